package model

// SourceKind classifies a trusted outlet
type SourceKind string

const (
	SourceNews        SourceKind = "news"
	SourceFactChecker SourceKind = "fact-checker"
)

// TrustedSource is a pre-approved outlet recommended for cross-checking
type TrustedSource struct {
	Name     string     `json:"name" yaml:"name" mapstructure:"name"`
	Homepage string     `json:"homepage" yaml:"homepage" mapstructure:"homepage"`
	Kind     SourceKind `json:"kind,omitempty" yaml:"kind,omitempty" mapstructure:"kind"`
}

// DefaultTrustedSources returns the built-in outlet list, national dailies first
func DefaultTrustedSources() []TrustedSource {
	return []TrustedSource{
		{Name: "Times of India", Homepage: "https://timesofindia.indiatimes.com", Kind: SourceNews},
		{Name: "NDTV", Homepage: "https://www.ndtv.com", Kind: SourceNews},
		{Name: "The Hindu", Homepage: "https://www.thehindu.com", Kind: SourceNews},
		{Name: "Indian Express", Homepage: "https://indianexpress.com", Kind: SourceNews},
		{Name: "India Today", Homepage: "https://www.indiatoday.in", Kind: SourceNews},
		{Name: "Anandabazar Patrika", Homepage: "https://www.anandabazar.com", Kind: SourceNews},
		{Name: "The Statesman", Homepage: "https://www.thestatesman.com", Kind: SourceNews},
		{Name: "The Telegraph", Homepage: "https://www.telegraphindia.com", Kind: SourceNews},
		{Name: "Alt News", Homepage: "https://www.altnews.in", Kind: SourceFactChecker},
		{Name: "Boom Live", Homepage: "https://www.boomlive.in", Kind: SourceFactChecker},
		{Name: "The Quint WebQoof", Homepage: "https://www.thequint.com/news/webqoof", Kind: SourceFactChecker},
	}
}
