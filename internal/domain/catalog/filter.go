package catalog

import (
	"math/rand"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// CategoriaAll is the wildcard value that disables category filtering
const CategoriaAll = "all"

// CatalogSections holds the mutually exclusive presentation buckets of
// the wholesale catalog
type CatalogSections struct {
	Assados   []*Product
	Promocoes []*Product
	Gerais    []*Product
}

// CatalogFilter derives the visible subsets of the product catalog
type CatalogFilter struct {
	resolver *StockResolver
}

// NewCatalogFilter creates a new CatalogFilter
func NewCatalogFilter(resolver *StockResolver) *CatalogFilter {
	return &CatalogFilter{resolver: resolver}
}

// Visible returns the products that qualify for catalog display: active,
// flagged for the catalog, priced above zero and with resolved stock
// above zero. The second return value lists products that failed only
// the stock condition while still flagged visible; callers issue
// best-effort hide updates for those.
func (f *CatalogFilter) Visible(products []*Product) (visible []*Product, toHide []*Product) {
	index := BuildProductIndex(products)

	for _, p := range products {
		if !p.Ativo || !p.ApareceCatalogo {
			continue
		}
		if !p.PrecoAtacado.IsPositive() {
			continue
		}
		if f.resolver.Resolve(p, index) <= 0 {
			toHide = append(toHide, p)
			continue
		}
		visible = append(visible, p)
	}
	return visible, toHide
}

// Search keeps products whose normalized codigo or descricao contains
// the normalized term. Matching is case-insensitive and
// accent-insensitive; a blank term returns the input unchanged.
func (f *CatalogFilter) Search(products []*Product, term string) []*Product {
	term = strings.TrimSpace(term)
	if term == "" {
		return products
	}

	normalized := NormalizeSearchTerm(term)
	var matched []*Product
	for _, p := range products {
		if strings.Contains(NormalizeSearchTerm(p.Codigo), normalized) ||
			strings.Contains(NormalizeSearchTerm(p.Descricao), normalized) {
			matched = append(matched, p)
		}
	}
	return matched
}

// Partition splits products into the assados, promocoes and gerais
// sections. A product lands in exactly one section: assados wins over
// promocoes, promocoes over gerais. The gerais section can be narrowed
// further by exact trimmed categoria match, with CategoriaAll as the
// wildcard.
func (f *CatalogFilter) Partition(products []*Product, categoria string) CatalogSections {
	categoria = strings.TrimSpace(categoria)
	var sections CatalogSections

	for _, p := range products {
		switch {
		case p.IsAssado:
			sections.Assados = append(sections.Assados, p)
		case p.PrecoPromocional:
			sections.Promocoes = append(sections.Promocoes, p)
		default:
			if categoria != "" && categoria != CategoriaAll && strings.TrimSpace(p.Categoria) != categoria {
				continue
			}
			sections.Gerais = append(sections.Gerais, p)
		}
	}
	return sections
}

// Shuffle randomizes product display order in place. The order is
// re-randomized on every catalog load and every search-term change,
// unseeded, so featured items rotate between requests.
func (f *CatalogFilter) Shuffle(products []*Product) {
	rand.Shuffle(len(products), func(i, j int) {
		products[i], products[j] = products[j], products[i]
	})
}

var searchNormalizer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeSearchTerm lowercases a string and strips diacritics, so
// "Pão" and "pao" compare equal
func NormalizeSearchTerm(s string) string {
	stripped, _, err := transform.String(searchNormalizer, s)
	if err != nil {
		// Fall back to plain case folding on malformed input
		return strings.ToLower(s)
	}
	return strings.ToLower(stripped)
}
