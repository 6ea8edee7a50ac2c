package notify

const emailHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>{{.Result.Company}}: {{.Result.ProductName}}</title>
  <style>
    body {
      margin: 0;
      padding: 24px;
      background-color: #f3f4f6;
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
      color: #111827;
      line-height: 1.5;
    }

    .container {
      max-width: 640px;
      margin: 0 auto;
      background: #ffffff;
      border-radius: 8px;
      border: 1px solid #e5e7eb;
      overflow: hidden;
    }

    .header {
      padding: 20px 24px;
      background: linear-gradient(135deg, #1f3a5f 0%, #27303b 100%);
      color: #ffffff;
    }

    .ticker {
      font-size: 24px;
      font-weight: 700;
      letter-spacing: 0.05em;
      margin-bottom: 4px;
    }

    .title {
      font-size: 15px;
      opacity: 0.9;
    }

    .badge {
      display: inline-block;
      margin-top: 8px;
      padding: 4px 10px;
      font-size: 11px;
      font-weight: 600;
      border-radius: 4px;
      background: #f97316;
      color: #ffffff;
      text-transform: uppercase;
      letter-spacing: 0.05em;
    }

    .section {
      padding: 16px 24px;
      border-top: 1px solid #f3f4f6;
    }

    .section-title {
      font-size: 11px;
      font-weight: 700;
      color: #6b7280;
      text-transform: uppercase;
      letter-spacing: 0.1em;
      margin-bottom: 12px;
    }

    .meta-grid {
      display: table;
      width: 100%;
      font-size: 14px;
    }

    .meta-row {
      display: table-row;
    }

    .meta-label {
      display: table-cell;
      padding: 6px 16px 6px 0;
      color: #6b7280;
      font-weight: 500;
      white-space: nowrap;
      width: 100px;
    }

    .meta-value {
      display: table-cell;
      padding: 6px 0;
      color: #111827;
    }

    .keywords-list {
      display: flex;
      flex-wrap: wrap;
      gap: 6px;
      margin: 0;
      padding: 0;
      list-style: none;
    }

    .keyword-tag {
      display: inline-block;
      padding: 3px 10px;
      font-size: 12px;
      font-weight: 500;
      background: #e0f2fe;
      color: #0369a1;
      border-radius: 4px;
    }

    .summary-list,
    .fact-list {
      margin: 0;
      padding-left: 20px;
      font-size: 14px;
    }

    .summary-list li,
    .fact-list li {
      margin-bottom: 8px;
      padding-left: 4px;
    }

    .fact-category {
      display: inline-block;
      padding: 3px 6px;
      font-size: 10px;
      font-weight: 600;
      background: #fef3c7;
      color: #92400e;
      border-radius: 3px;
      text-transform: uppercase;
      letter-spacing: 0.03em;
      margin-right: 2px;
    }

    .context-box {
      background: #f9fafb;
      border-left: 3px solid #1f3a5f;
      padding: 12px 16px;
      font-size: 13px;
      color: #374151;
      border-radius: 0 4px 4px 0;
    }

    .cta-button {
      display: inline-block;
      margin-top: 12px;
      padding: 10px 20px;
      font-size: 14px;
      font-weight: 600;
      color: #ffffff !important;
      background: #1f3a5f;
      border-radius: 6px;
      text-decoration: none;
    }

    .footer {
      padding: 16px 24px;
      font-size: 12px;
      color: #9ca3af;
      text-align: center;
      background: #f9fafb;
      border-top: 1px solid #f3f4f6;
    }

    a {
      color: #0b3d91;
      text-decoration: none;
    }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <div class="ticker">{{.Result.Company}}</div>
      <div class="title">{{.Result.ProductName}}</div>
      <span class="badge">Form 8-K</span>
    </div>

    <div class="section">
      <div class="section-title">Filing Details</div>
      <div class="meta-grid">
        <div class="meta-row">
          <div class="meta-label">Filed</div>
          <div class="meta-value">{{.Result.FilingDate}}</div>
        </div>
        <div class="meta-row">
          <div class="meta-label">CIK</div>
          <div class="meta-value">{{.Result.CIK}}</div>
        </div>
        <div class="meta-row">
          <div class="meta-label">Accession</div>
          <div class="meta-value">{{.Result.AccessionNumber}}</div>
        </div>
        {{if .Result.Keyword}}
        <div class="meta-row">
          <div class="meta-label">Keyword</div>
          <div class="meta-value">
            <div class="keywords-list">
              <span class="keyword-tag">{{.Result.Keyword}}</span>
            </div>
          </div>
        </div>
        {{end}}
      </div>
      {{if .Result.DocumentURL}}
      <a href="{{.Result.DocumentURL}}" class="cta-button" target="_blank" rel="noopener">
        View 8-K Filing →
      </a>
      {{end}}
    </div>

    {{if .Result.Context}}
    <div class="section">
      <div class="section-title">Product Context</div>
      <div class="context-box">{{.Result.Context}}</div>
    </div>
    {{end}}

    {{if .Analysis}}
      {{if .Analysis.Summary}}
      <div class="section">
        <div class="section-title">AI Summary</div>
        <ul class="summary-list">
          {{range .Analysis.Summary}}
          <li>{{.}}</li>
          {{end}}
        </ul>
      </div>
      {{end}}

      {{if .Analysis.ProductFacts}}
      <div class="section">
        <div class="section-title">Product Facts</div>
        <ul class="fact-list">
          {{range .Analysis.ProductFacts}}
          <li>
            <span class="fact-category">{{.Category}}</span>
            <span>{{.Details}}</span>
          </li>
          {{end}}
        </ul>
      </div>
      {{end}}
    {{end}}

    <div class="footer">
      Generated by <a href="https://github.com/jeremymartinezq/sec-8k-extractor" target="_blank" rel="noopener">sec-8k-extractor</a>
    </div>
  </div>
</body>
</html>`
