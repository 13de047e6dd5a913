package report

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"courtledger/internal/domain/beverage"
	"courtledger/internal/domain/booking"
	"courtledger/internal/domain/finance"
	"courtledger/internal/domain/subscription"
	apperrors "courtledger/internal/shared/errors"
	"courtledger/internal/shared/format"
	"courtledger/internal/shared/logger"
)

const backupTimestampLayout = "20060102_150405"

// BackupResult names the files one export produced.
type BackupResult struct {
	MarkdownPath string
	HTMLPath     string
	RecordCount  int
}

// Exporter snapshots every entity into one human-readable report, written
// as Markdown plus a sanitized HTML rendering of the same document.
type Exporter struct {
	bookings  booking.Repository
	stats     finance.StatRepository
	shares    finance.ShareEventRepository
	subs      subscription.Repository
	items     beverage.ItemRepository
	sales     beverage.SaleRepository
	backupDir string
	markdown  goldmark.Markdown
	sanitizer *bluemonday.Policy
	log       logger.Interface
}

func NewExporter(
	bookings booking.Repository,
	stats finance.StatRepository,
	shares finance.ShareEventRepository,
	subs subscription.Repository,
	items beverage.ItemRepository,
	sales beverage.SaleRepository,
	backupDir string,
	log logger.Interface,
) *Exporter {
	if log == nil {
		log = logger.NewLogger()
	}
	return &Exporter{
		bookings:  bookings,
		stats:     stats,
		shares:    shares,
		subs:      subs,
		items:     items,
		sales:     sales,
		backupDir: backupDir,
		markdown:  goldmark.New(goldmark.WithExtensions(extension.Table)),
		sanitizer: bluemonday.UGCPolicy(),
		log:       log.Named("report.backup"),
	}
}

// Export writes the snapshot pair under the backup directory and returns
// their paths.
func (e *Exporter) Export(ctx context.Context) (*BackupResult, error) {
	doc, count, err := e.render(ctx)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(e.backupDir, 0o755); err != nil {
		return nil, apperrors.NewInternalError("create backup directory", err.Error())
	}
	stamp := time.Now().Format(backupTimestampLayout)
	mdPath := filepath.Join(e.backupDir, "backup_"+stamp+".md")
	htmlPath := filepath.Join(e.backupDir, "backup_"+stamp+".html")

	if err := os.WriteFile(mdPath, []byte(doc), 0o644); err != nil {
		return nil, apperrors.NewInternalError("write backup report", err.Error())
	}

	var rendered bytes.Buffer
	if err := e.markdown.Convert([]byte(doc), &rendered); err != nil {
		return nil, apperrors.NewInternalError("render backup report", err.Error())
	}
	safe := e.sanitizer.SanitizeBytes(rendered.Bytes())
	if err := os.WriteFile(htmlPath, safe, 0o644); err != nil {
		return nil, apperrors.NewInternalError("write backup report", err.Error())
	}

	e.log.Info("backup exported", "markdown", mdPath, "html", htmlPath, "records", count)
	return &BackupResult{MarkdownPath: mdPath, HTMLPath: htmlPath, RecordCount: count}, nil
}

func (e *Exporter) render(ctx context.Context) (string, int, error) {
	var sb strings.Builder
	count := 0

	sb.WriteString("# Court Ledger Backup\n\n")
	sb.WriteString("Generated: " + time.Now().Format("2006-01-02 15:04:05") + "\n")

	recs, err := e.bookings.GetAll(ctx, true)
	if err != nil {
		return "", 0, err
	}
	count += len(recs)
	sb.WriteString("\n## Bookings\n\n")
	if len(recs) == 0 {
		sb.WriteString("No records.\n")
	} else {
		sb.WriteString("| Date | Court | Slot | Price | Activity | Person |\n")
		sb.WriteString("|---|---|---|---|---|---|\n")
		for _, b := range recs {
			fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s | %s |\n",
				b.Date, b.Court, b.SlotText, format.Currency(b.Price), b.Activity, b.Person)
		}
	}

	stats, err := e.stats.List(ctx)
	if err != nil {
		return "", 0, err
	}
	count += len(stats)
	sb.WriteString("\n## Monthly Statistics\n\n")
	if len(stats) == 0 {
		sb.WriteString("No records.\n")
	} else {
		sb.WriteString("| Month | Revenue | Cost | Reason | Profit |\n")
		sb.WriteString("|---|---|---|---|---|\n")
		for _, st := range stats {
			fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s |\n",
				st.Month, format.Currency(st.TotalRevenue), format.Currency(st.TotalCost),
				st.CostReason, format.Currency(st.Profit))
		}
	}

	subs, err := e.subs.List(ctx)
	if err != nil {
		return "", 0, err
	}
	count += len(subs)
	sb.WriteString("\n## Subscriptions\n\n")
	if len(subs) == 0 {
		sb.WriteString("No records.\n")
	} else {
		sb.WriteString("| Month | Customer | Court | Sessions/week | Hours | Price |\n")
		sb.WriteString("|---|---|---|---|---|---|\n")
		for _, sub := range subs {
			fmt.Fprintf(&sb, "| %s | %s | %s | %d | %s | %s |\n",
				sub.Month, sub.CustomerName, sub.Court, sub.SessionsPerWeek,
				sub.HoursPerSession.String(), format.Currency(sub.Price))
		}
	}

	events, err := e.shares.List(ctx)
	if err != nil {
		return "", 0, err
	}
	count += len(events)
	sb.WriteString("\n## Profit Shares\n\n")
	if len(events) == 0 {
		sb.WriteString("No records.\n")
	} else {
		sb.WriteString("| Event | Scope | Profit | Summary |\n")
		sb.WriteString("|---|---|---|---|\n")
		for _, ev := range events {
			fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n",
				ev.EventID, ev.Scope, format.Currency(ev.Profit), ev.Summary)
		}
	}

	items, err := e.items.List(ctx)
	if err != nil {
		return "", 0, err
	}
	count += len(items)
	sb.WriteString("\n## Beverage Inventory\n\n")
	if len(items) == 0 {
		sb.WriteString("No records.\n")
	} else {
		sb.WriteString("| Name | Stock | Unit Price |\n")
		sb.WriteString("|---|---|---|\n")
		for _, it := range items {
			fmt.Fprintf(&sb, "| %s | %d | %s |\n", it.Name, it.Stock, format.Currency(it.UnitPrice))
		}
	}

	sales, err := e.sales.List(ctx)
	if err != nil {
		return "", 0, err
	}
	count += len(sales)
	sb.WriteString("\n## Beverage Sales\n\n")
	if len(sales) == 0 {
		sb.WriteString("No records.\n")
	} else {
		sb.WriteString("| Date | Name | Quantity | Unit Price | Line Total |\n")
		sb.WriteString("|---|---|---|---|---|\n")
		for _, sale := range sales {
			fmt.Fprintf(&sb, "| %s | %s | %d | %s | %s |\n",
				sale.Date, sale.ItemName, sale.Quantity,
				format.Currency(sale.UnitPrice), format.Currency(sale.LineTotal))
		}
	}

	return sb.String(), count, nil
}
