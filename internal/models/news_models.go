package models

// NewsArticle is a provider article normalised for analysis and display.
type NewsArticle struct {
	Title       string  `json:"title"`
	Content     string  `json:"content"`
	Description string  `json:"description"`
	URL         string  `json:"url"`
	Source      string  `json:"source"`
	Author      string  `json:"author"`
	PublishedAt string  `json:"publishedAt"`
	ImageURL    *string `json:"imageUrl"`
	Company     *string `json:"company"`
	// Truncated is set when the provider cut the body short.
	Truncated bool `json:"-"`
}

type NewsPage struct {
	Articles     []NewsArticle `json:"articles"`
	TotalResults int           `json:"totalResults"`
	Page         int           `json:"page,omitempty"`
	PageSize     int           `json:"pageSize,omitempty"`
}

type Company struct {
	Name     string   `json:"name"`
	Ticker   string   `json:"ticker"`
	Keywords []string `json:"-"`
}

type FetchRequest struct {
	Company string `json:"company"`
	Topic   string `json:"topic"`
	Limit   int    `json:"limit"`
}

// FetchedArticle is one entry of a fetch-and-analyze report.
type FetchedArticle struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Sentiment      SentimentLabel `json:"sentiment"`
	SentimentScore float64        `json:"sentimentScore"`
	Category       ESGCategory    `json:"category"`
	ESGScores      ESGScores      `json:"esgScores"`
	Source         string         `json:"source,omitempty"`
	PublishedAt    string         `json:"publishedAt,omitempty"`
	URL            string         `json:"url"`
	AlreadyExists  bool           `json:"alreadyExists"`
}

type FetchError struct {
	Title string `json:"title"`
	Error string `json:"error"`
}

type FetchReport struct {
	Articles     []FetchedArticle `json:"articles"`
	Errors       []FetchError     `json:"errors,omitempty"`
	TotalFetched int              `json:"totalFetched"`
}
