package news

import (
	"strings"

	"github.com/spacesedan/esgpulse/internal/models"
)

var sampleCompanies = []models.Company{
	{Name: "Tesla", Ticker: "TSLA", Keywords: []string{"Tesla", "Elon Musk", "electric vehicles"}},
	{Name: "Apple", Ticker: "AAPL", Keywords: []string{"Apple Inc", "Tim Cook", "Apple sustainability"}},
	{Name: "Microsoft", Ticker: "MSFT", Keywords: []string{"Microsoft", "Satya Nadella", "Microsoft carbon"}},
	{Name: "Amazon", Ticker: "AMZN", Keywords: []string{"Amazon", "AWS", "Amazon climate"}},
	{Name: "Google", Ticker: "GOOGL", Keywords: []string{"Google", "Alphabet", "Google sustainability"}},
	{Name: "BP", Ticker: "BP", Keywords: []string{"BP", "British Petroleum", "BP energy transition"}},
	{Name: "Unilever", Ticker: "UL", Keywords: []string{"Unilever", "sustainable living", "Unilever ESG"}},
	{Name: "Patagonia", Ticker: "PATA", Keywords: []string{"Patagonia", "outdoor clothing", "Patagonia environment"}},
	{Name: "Nike", Ticker: "NKE", Keywords: []string{"Nike", "Nike sustainability", "Nike labor"}},
	{Name: "Nestlé", Ticker: "NSRGY", Keywords: []string{"Nestlé", "Nestle", "Nestlé water"}},
	{Name: "Walmart", Ticker: "WMT", Keywords: []string{"Walmart", "Walmart sustainability", "Walmart supply chain"}},
}

// esgTerms decide whether a headline is ESG related.
var esgTerms = []string{
	"esg", "sustainability", "climate change", "carbon emissions",
	"renewable energy", "diversity inclusion", "corporate governance",
	"environmental impact", "social responsibility", "green energy",
	"net zero", "carbon neutral", "human rights", "labor practices",
}

const defaultESGQuery = `ESG OR "environmental social governance"`

var topicQueries = map[string]string{
	"environmental": "climate change OR carbon emissions OR renewable energy OR sustainability",
	"social":        "diversity inclusion OR labor rights OR human rights OR social responsibility",
	"governance":    "corporate governance OR board diversity OR executive compensation OR transparency",
}

// Topics lists the topics ESGNews understands, in a stable order.
var Topics = []string{"environmental", "social", "governance"}

// Companies returns the sample catalogue without search keywords.
func Companies() []models.Company {
	out := make([]models.Company, len(sampleCompanies))
	for i, c := range sampleCompanies {
		out[i] = models.Company{Name: c.Name, Ticker: c.Ticker}
	}
	return out
}

// FindCompany matches a name or ticker, ignoring case.
func FindCompany(nameOrTicker string) (models.Company, bool) {
	for _, c := range sampleCompanies {
		if strings.EqualFold(c.Name, nameOrTicker) || strings.EqualFold(c.Ticker, nameOrTicker) {
			return c, true
		}
	}
	return models.Company{}, false
}

func CompanyQuery(name string) string {
	if c, ok := FindCompany(name); ok {
		return "(" + strings.Join(c.Keywords, " OR ") + ") AND (ESG OR sustainability OR climate OR governance OR environmental)"
	}
	return name + " AND (ESG OR sustainability OR climate OR governance)"
}

// TopicQuery falls back to the general ESG query for unknown or empty
// topics.
func TopicQuery(topic string) string {
	if q, ok := topicQueries[strings.ToLower(topic)]; ok {
		return q
	}
	return defaultESGQuery
}

func IsESGRelevant(text string) bool {
	lower := strings.ToLower(text)
	for _, term := range esgTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
