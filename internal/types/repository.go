package types

// FetchResult carries one retrieved model document and records which
// repository variant produced it. FromExpanded is the sole signal the
// resolver uses to decide whether further dependency discovery is needed.
type FetchResult struct {
	Definition   string
	FromExpanded bool
}

// RepositoryFeatures lists the optional capabilities a repository
// advertises in its metadata document.
type RepositoryFeatures struct {
	Expanded bool `json:"expanded"`
	Index    bool `json:"index"`
}

// RepositoryMetadata mirrors the well-known metadata.json resource at the
// repository root. Fetched at most once per client lifetime, best effort.
type RepositoryMetadata struct {
	CommitID        string             `json:"commitId"`
	PublishDateUTC  string             `json:"publishDateUtc"`
	SourceRepo      string             `json:"sourceRepo"`
	TotalModelCount int                `json:"totalModelCount"`
	Features        RepositoryFeatures `json:"features"`
}
