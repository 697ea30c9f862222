package ingest

// Pipeline produces every normalized view of a lyric in one pass:
// text → tokens (diacritics kept) → folded tokens → verses → phrases
type Pipeline struct {
	segmenter *Segmenter
}

// NewPipeline creates a pipeline around the given segmenter
func NewPipeline(segmenter *Segmenter) *Pipeline {
	if segmenter == nil {
		segmenter = NewSegmenter(DefaultNewlineMarker, nil)
	}
	return &Pipeline{segmenter: segmenter}
}

// Segmenter returns the segmenter used for verses and phrases.
func (p *Pipeline) Segmenter() *Segmenter {
	return p.segmenter
}

// Processed holds the normalized views of one lyric text
type Processed struct {
	Tokens       []string // lowercase, diacritics kept
	FoldedTokens []string // lowercase, diacritics folded
	Verses       []string
	Phrases      []string
}

// Tokens tokenizes the raw text. Newline markers are not special here: the
// letters of "[NL]" come out as the word "nl".
func (p *Pipeline) Tokens(text string, stripDiacritics bool) []string {
	return Tokenize(text, stripDiacritics)
}

// Process runs a lyric through the normalizer and segmenter
func (p *Pipeline) Process(text string) Processed {
	return Processed{
		Tokens:       p.Tokens(text, false),
		FoldedTokens: p.Tokens(text, true),
		Verses:       p.segmenter.Verses(text),
		Phrases:      p.segmenter.Phrases(text),
	}
}
