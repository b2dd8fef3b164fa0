package domain

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// LetterCounts is a multiset of uppercase letters. A missing key and a zero
// count mean the same thing.
type LetterCounts map[string]int

// IsLetter reports whether s is exactly one character in A-Z.
func IsLetter(s string) bool {
	return len(s) == 1 && s[0] >= 'A' && s[0] <= 'Z'
}

// NormalizeLetter upper-cases and validates a single letter.
func NormalizeLetter(s string) (string, error) {
	l := strings.ToUpper(strings.TrimSpace(s))
	if !IsLetter(l) {
		return "", ErrInvalidLetter
	}
	return l, nil
}

// LettersOf builds the multiset of letters in word. Non-letters are rejected.
func LettersOf(word string) (LetterCounts, error) {
	counts := make(LetterCounts)
	for _, r := range strings.ToUpper(word) {
		l := string(r)
		if !IsLetter(l) {
			return nil, ErrInvalidLetter
		}
		counts[l]++
	}
	return counts, nil
}

// Get returns the count for letter, treating absence as zero.
func (c LetterCounts) Get(letter string) int {
	if c == nil {
		return 0
	}
	return c[letter]
}

// Letters returns the letters with a positive count, sorted.
// Sorted order doubles as the row-lock order for multi-letter debits.
func (c LetterCounts) Letters() []string {
	letters := make([]string, 0, len(c))
	for l, n := range c {
		if n > 0 {
			letters = append(letters, l)
		}
	}
	sort.Strings(letters)
	return letters
}

// Positive returns a copy without zero or negative entries.
func (c LetterCounts) Positive() LetterCounts {
	out := make(LetterCounts, len(c))
	for l, n := range c {
		if n > 0 {
			out[l] = n
		}
	}
	return out
}

// WordDefinition is a named multiset of letters redeemable for a cash bonus.
type WordDefinition struct {
	ID              int             `json:"id"`
	Word            string          `json:"word"`
	RequiredLetters LetterCounts    `json:"required_letters"`
	RewardAmount    decimal.Decimal `json:"reward_amount"`
	Active          bool            `json:"active"`
}

// WordClaimResult is returned by a successful word-bonus claim.
type WordClaimResult struct {
	UserID         string          `json:"user_id"`
	WordID         int             `json:"word_id"`
	Word           string          `json:"word"`
	RewardAmount   decimal.Decimal `json:"reward_amount"`
	NewBalance     decimal.Decimal `json:"new_balance"`
	LettersDebited LetterCounts    `json:"letters_debited"`
}
