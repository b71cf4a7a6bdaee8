package strategies

import (
	"bufio"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
	"unicode"

	"code.cloudfoundry.org/lager"
)

const nameLength = 4

// Namer hands out four letter company names.
type Namer struct {
	words []string
}

// NewNamer reads lowercase four letter words from wordFile. When the file
// cannot be read it falls back to cp00 through cp99.
func NewNamer(logger lager.Logger, wordFile string) *Namer {
	words, err := readWords(wordFile)
	if err != nil || len(words) == 0 {
		logger.Info("using-fallback-names", lager.Data{"word-file": wordFile, "error": fmt.Sprint(err)})
		words = nil
	}

	return NewNamerFromWords(words)
}

// NewNamerFromWords uses words as the name list, or cp00 through cp99 when it
// is empty.
func NewNamerFromWords(words []string) *Namer {
	if len(words) == 0 {
		words = fallbackWords()
	}
	return &Namer{words: words}
}

func (n *Namer) Words() []string {
	return n.words
}

func (n *Namer) RandomName(r *rand.Rand) string {
	return n.words[r.IntN(len(n.words))]
}

// UniqueName draws a name that is not in used and records it there.
func (n *Namer) UniqueName(r *rand.Rand, used map[string]bool) string {
	start := r.IntN(len(n.words))
	for i := 0; i < len(n.words); i++ {
		name := n.words[(start+i)%len(n.words)]
		if !used[name] {
			used[name] = true
			return name
		}
	}

	base := n.words[start]
	for i := 2; ; i++ {
		name := fmt.Sprintf("%s%d", base, i)
		if !used[name] {
			used[name] = true
			return name
		}
	}
}

func readWords(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	words := []string{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if isName(word) {
			words = append(words, word)
		}
	}

	return words, scanner.Err()
}

func isName(word string) bool {
	if len(word) != nameLength {
		return false
	}
	for _, r := range word {
		if !unicode.IsLower(r) {
			return false
		}
	}
	return true
}

func fallbackWords() []string {
	words := make([]string, 100)
	for i := range words {
		words[i] = fmt.Sprintf("cp%02d", i)
	}
	return words
}
