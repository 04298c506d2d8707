package checkout

import (
	"fmt"

	"vendora/models"
)

// ValidateSnapshot checks every line, in cart order, against the catalog
// records loaded with the snapshot. All-or-nothing: the caller aborts the
// whole checkout when the returned list is non-empty, before any write.
func ValidateSnapshot(snap *models.CartSnapshot) []LineIssue {
	var issues []LineIssue
	for _, line := range snap.Lines {
		switch {
		case line.Product == nil:
			issues = append(issues, LineIssue{
				LineID:    line.LineID,
				ProductID: line.ProductID,
				Code:      IssueProductMissing,
				Message:   fmt.Sprintf("%q is no longer available", line.Title),
			})
		case line.Shop == nil:
			issues = append(issues, LineIssue{
				LineID:    line.LineID,
				ProductID: line.ProductID,
				Code:      IssueProductOwnerMissing,
				Message:   fmt.Sprintf("the seller of %q could not be resolved", line.Title),
			})
		case line.Product.Stock < line.Quantity:
			issues = append(issues, LineIssue{
				LineID:    line.LineID,
				ProductID: line.ProductID,
				Code:      IssueInsufficientStock,
				Message:   fmt.Sprintf("only %d of %q in stock, %d requested", line.Product.Stock, line.Title, line.Quantity),
				Available: line.Product.Stock,
				Requested: line.Quantity,
			})
		}
	}
	return issues
}
