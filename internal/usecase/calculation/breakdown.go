package calculation

import (
	"github.com/shopspring/decimal"

	"scholarship-portal-backend/internal/domain/disbursement"
)

var (
	maintenanceShare = decimal.RequireFromString("0.25")
	booksShare       = decimal.RequireFromString("0.05")
)

// Breakdown splits a total 70/25/5 across tuition, maintenance and books.
// Maintenance and books are rounded to the smallest currency unit and tuition
// absorbs the remainder, so the three parts always sum exactly to total.
func Breakdown(total decimal.Decimal) []Component {
	maintenance := total.Mul(maintenanceShare).Round(2)
	books := total.Mul(booksShare).Round(2)
	tuition := total.Sub(maintenance).Sub(books)
	return []Component{
		{Type: string(disbursement.ComponentTuition), Amount: tuition},
		{Type: string(disbursement.ComponentMaintenance), Amount: maintenance},
		{Type: string(disbursement.ComponentBooks), Amount: books},
	}
}
