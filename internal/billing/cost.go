package billing

import "github.com/MuckRock/textract-table-extractor-add-on/internal/models"

// CreditsPerPage is the platform price of one analyzed page.
const CreditsPerPage = 10

// EstimateCost prices a run before any page is touched. Each document
// contributes LastPage(pageCount) - Start + 1 pages. The per-document
// term is not floored at zero: an inverted range yields a negative
// estimate, and the charge is made with that raw number. The range
// checks that would reject the inversion run after the charge.
func EstimateCost(docs []models.Document, r models.PageRange) int {
	pages := 0
	for _, d := range docs {
		pages += r.LastPage(d.PageCount) - r.Start + 1
	}
	return pages * CreditsPerPage
}

// EffectivePages is the number of pages a run will actually analyze:
// the clamped per-document page counts, never negative. Reporting only.
func EffectivePages(docs []models.Document, r models.PageRange) int {
	pages := 0
	for _, d := range docs {
		pages += r.PagesWithin(d.PageCount)
	}
	return pages
}
