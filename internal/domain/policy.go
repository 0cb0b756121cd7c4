package domain

// PolicyDoc is the indexed metadata for one policy markdown file. The backing
// content is read lazily from Path on each access, never cached.
type PolicyDoc struct {
	DocID string   `json:"doc_id"`
	Title string   `json:"title"`
	Tags  []string `json:"tags"`
	Path  string   `json:"-"`
}

// PolicyIndexEntry is the read-only projection served by the policy index
// resource.
type PolicyIndexEntry struct {
	DocID string   `json:"doc_id"`
	Title string   `json:"title"`
	Tags  []string `json:"tags"`
}

// PolicySearchResult is one match from the policy search tool: the first
// matching snippet of a document, never more than one per document.
type PolicySearchResult struct {
	DocID   string `json:"doc_id"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}
