package dto

type LexiconCategoryResponse struct {
	Category string   `json:"category"`
	Phrases  []string `json:"phrases"`
}

type LexiconResponse struct {
	Categories []LexiconCategoryResponse `json:"categories"`
	Features   []string                  `json:"features"`
	Schema     string                    `json:"schema_fingerprint"`
}
