package pipeline

import (
	"time"

	"github.com/kndndrj/dbexport/core"
)

// Source labels used in the combined orders file.
const (
	LabelPostgres  = "postgresql"
	LabelSQLServer = "sql_server"
)

const (
	CombineFilePrefix = "combined_orders"
	TotalsFilePrefix  = "customer_totals"
)

const (
	// OrdersQuery selects the orders placed on or after the cutoff date.
	OrdersQuery = `SELECT id, customer_id, order_date, total_amount
FROM orders
WHERE order_date >= {{ arg 1 }}
ORDER BY order_date DESC, id DESC`

	// CustomerTotalsQuery sums every customer's orders placed on or after
	// the cutoff date. Customers without orders are listed with zero.
	CustomerTotalsQuery = `SELECT c.id, c.name, c.email, COALESCE(SUM(o.total_amount), 0) AS total_spent
FROM customers c
LEFT JOIN orders o ON o.customer_id = c.id AND o.order_date >= {{ arg 1 }}
GROUP BY c.id, c.name, c.email
ORDER BY total_spent DESC, c.id DESC`
)

// earliestCutoff is accepted by the date types of every supported database.
const earliestCutoff = "1900-01-01"

var (
	// OrderColumns are the columns each orders source produces.
	OrderColumns = core.Header{"id", "customer_id", "order_date", "total_amount"}

	CombineHeader = core.Header{"source_db", "order_id", "customer_id", "order_date", "total_amount"}
	TotalsHeader  = core.Header{"id", "name", "email", "total_spent"}
)

// Cutoff returns the date days before now as YYYY-MM-DD. A non positive
// number of days means no cutoff.
func Cutoff(now time.Time, days int) string {
	if days <= 0 {
		return earliestCutoff
	}
	return now.AddDate(0, 0, -days).Format(time.DateOnly)
}

// CombineJob merges orders from all sources into one labeled file.
func CombineJob(sources ...Source) *Job {
	return &Job{
		Name:        "combine",
		FilePrefix:  CombineFilePrefix,
		Header:      CombineHeader,
		StatsColumn: "total_amount",
		Sources:     sources,
		Labeled:     true,
	}
}

// TotalsJob exports per customer totals from a single source.
func TotalsJob(source Source) *Job {
	return &Job{
		Name:        "totals",
		FilePrefix:  TotalsFilePrefix,
		Header:      TotalsHeader,
		StatsColumn: "total_spent",
		Sources:     []Source{source},
	}
}
