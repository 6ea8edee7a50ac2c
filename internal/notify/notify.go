/*
Package notify reports extracted filings on the console and by email.
*/
package notify

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/jeremymartinezq/sec-8k-extractor/internal/ai"
	"github.com/jeremymartinezq/sec-8k-extractor/internal/types"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const maxConcurrentSends = 4

// NotificationData is one result plus its optional AI analysis.
type NotificationData struct {
	Result   types.Result
	Analysis *ai.Analysis
}

type RenderedMessage struct {
	Subject string
	Text    string
	HTML    string
}

type Renderer interface {
	Render(data NotificationData) (*RenderedMessage, error)
}

type Sender interface {
	Send(msg *RenderedMessage) error
}

// Notifier renders and sends one message per notification.
type Notifier struct {
	renderer Renderer
	sender   Sender
	log      *zap.Logger
}

func NewNotifier(renderer Renderer, sender Sender, log *zap.Logger) *Notifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &Notifier{renderer: renderer, sender: sender, log: log}
}

// Dispatch sends all notifications, at most maxConcurrentSends at a time, and
// returns how many were delivered. Individual failures are logged and do not
// stop the others.
func (n *Notifier) Dispatch(items []NotificationData) int {
	var (
		g    errgroup.Group
		mu   sync.Mutex
		sent int
	)
	g.SetLimit(maxConcurrentSends)

	for _, item := range items {
		msg, err := n.renderer.Render(item)
		if err != nil {
			n.log.Error("Failed to render notification", zap.String("key", item.Result.Key()), zap.Error(err))
			continue
		}

		g.Go(func() error {
			if err := n.sender.Send(msg); err != nil {
				n.log.Warn("Notification not delivered", zap.String("subject", msg.Subject), zap.Error(err))
				return nil
			}
			mu.Lock()
			sent++
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return sent
}

func formatBulletList(points []string) string {
	var sb strings.Builder
	for _, p := range points {
		sb.WriteString(fmt.Sprintf("\t- %s\n", p))
	}
	return sb.String()
}

func formatFacts(facts []ai.ProductFact) string {
	var sb strings.Builder
	for _, f := range facts {
		sb.WriteString(fmt.Sprintf("\t- [%s] %s\n", f.Category, f.Details))
	}
	return sb.String()
}

// ReportResults prints every result to w, followed by where the CSV was saved.
func ReportResults(w io.Writer, items []NotificationData, outputPath string) {
	if len(items) == 0 {
		fmt.Fprintln(w, "\n-------------------------------------------")
		fmt.Fprintln(w, "No product-related 8-K filings found.")
		fmt.Fprintln(w, "-------------------------------------------")
		return
	}

	fmt.Fprintln(w, "\n===========================================")
	fmt.Fprintf(w, "✅ %d PRODUCT FILINGS FOUND\n", len(items))
	fmt.Fprintln(w, "===========================================")

	for i, item := range items {
		r := item.Result

		out := fmt.Sprintf("\n--- FILING #%d ---\n", i+1) +
			fmt.Sprintf("Company: %s\n", r.Company) +
			fmt.Sprintf("Filing Date: %s\n", r.FilingDate) +
			fmt.Sprintf("Product Name: %s\n", r.ProductName) +
			fmt.Sprintf("Product Context:\n\t%s\n", r.Context)

		if a := item.Analysis; a != nil {
			if len(a.Summary) > 0 {
				out += fmt.Sprintf("AI Summary:\n%s", formatBulletList(a.Summary))
			}
			if len(a.ProductFacts) > 0 {
				out += fmt.Sprintf("Product Facts:\n%s", formatFacts(a.ProductFacts))
			}
		}

		fmt.Fprint(w, out)
	}

	fmt.Fprintln(w, "\n===========================================")
	fmt.Fprintf(w, "Search complete. Results saved to %s.\n", outputPath)
	fmt.Fprintln(w, "===========================================")
}
