package dto

import "github.com/jihyekwon/scrapbook/internal/search"

// SearchResponse carries one aggregation: both buckets, the ranked list
// for the requested tab, and the per-tab counts.
type SearchResponse struct {
	ActiveTab      string        `json:"activeTab"`
	Results        []Post        `json:"results"`
	TitleResults   []Post        `json:"titleResults"`
	KeywordResults []Post        `json:"keywordResults"`
	ResultCounts   search.Counts `json:"resultCounts"`
}

func NewSearchResponse(res *search.Result, tab search.Tab) SearchResponse {
	return SearchResponse{
		ActiveTab:      string(tab),
		Results:        FromDomainList(res.ResultsFor(tab)),
		TitleResults:   FromDomainList(res.TitleResults),
		KeywordResults: FromDomainList(res.KeywordResults),
		ResultCounts:   res.Counts,
	}
}
