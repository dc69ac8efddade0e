package fragment

// Source yields one random raw quote from a named source.
// *cache.Cache satisfies it.
type Source interface {
	RandomQuote(source string) (string, error)
}

// Extractor draws random raw quotes and cuts fragments out of them.
//
// Each call draws its own quote, so the beginning, middle and end of one
// generated quote normally come from three different raw quotes.
type Extractor struct {
	src Source
}

// NewExtractor creates an Extractor reading from src.
func NewExtractor(src Source) *Extractor {
	return &Extractor{src: src}
}

// Beginning extracts a beginning fragment from a fresh random quote.
func (e *Extractor) Beginning(source string) (string, error) {
	return e.fragment(source, ExtractBeginning)
}

// Middle extracts a middle fragment from a fresh random quote.
func (e *Extractor) Middle(source string) (string, error) {
	return e.fragment(source, ExtractMiddle)
}

// End extracts an end fragment from a fresh random quote.
func (e *Extractor) End(source string) (string, error) {
	return e.fragment(source, ExtractEnd)
}

func (e *Extractor) fragment(source string, rule func(string) string) (string, error) {
	raw, err := e.src.RandomQuote(source)
	if err != nil {
		return "", err
	}
	return rule(raw), nil
}
