package types

// TickerMap maps an uppercase ticker symbol to its 10-digit, zero-padded CIK.
type TickerMap map[string]string

// Filing is a single entry of an issuer's filing history that matched the
// requested form type.
type Filing struct {
	AccessionNumber string
	FilingDate      string
	Form            string
	IndexURL        string
	DocURL          string
}

// Mention is the first configured keyword found in a document and the text
// window around it.
type Mention struct {
	Keyword string
	Window  string
	Source  string
}

type Result struct {
	Company         string
	CIK             string
	FilingDate      string
	AccessionNumber string
	DocumentURL     string
	Keyword         string
	ProductName     string
	Context         string
}

// Key identifies a result across runs.
func (r Result) Key() string {
	return r.Company + "|" + r.AccessionNumber
}
