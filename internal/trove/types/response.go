package types

// Record is one normalized search result. Upstream record shapes vary by
// content category and API version; every field here has a defined fallback
// so normalization can never fail.
type Record struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Snippet     string `json:"snippet"`
	Date        string `json:"date"`
	Type        string `json:"type"`
	Contributor string `json:"contributor"`
	SourceURL   string `json:"troveUrl"`
}

// ResultPage holds one page of normalized results plus the upstream total.
type ResultPage struct {
	Docs     []Record `json:"docs"`
	NumFound int      `json:"numFound"`
	Start    int      `json:"start"`
}

// SearchEnvelope is the response returned to the client for a search.
type SearchEnvelope struct {
	Response ResultPage `json:"response"`
	Query    string     `json:"query"`
	Success  bool       `json:"success"`
}

// ProbeReport is the outcome of a single non-retried upstream request,
// used by the diagnostic endpoints.
type ProbeReport struct {
	StatusCode  int
	StatusText  string
	OK          bool
	HasCategory bool
	HasArticles bool
	HasWorks    bool
	Total       int64
}
