package terminal

// NewLineReaderFunc builds a LineReader over a fake prompt for tests.
func NewLineReaderFunc(prompt func(string) (string, error), record func(string)) *LineReader {
	return &LineReader{prompt: prompt, record: record}
}
