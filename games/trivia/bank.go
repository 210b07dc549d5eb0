/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package trivia

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"
)

const OptionsPerQuestion = 4

// Bank supplies questions to new rooms. Draw must return count distinct
// questions, or ErrInsufficientQuestions.
type Bank interface {
	Draw(count int) ([]Question, error)
}

// StaticBank samples without replacement from a fixed list.
type StaticBank struct {
	questions []Question
}

func NewStaticBank(questions []Question) (*StaticBank, error) {
	out := make([]Question, 0, len(questions))

	for i, q := range questions {
		if err := validateQuestion(q); err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}

		options := make([]string, len(q.Options))
		copy(options, q.Options)
		q.Options = options

		out = append(out, q)
	}

	return &StaticBank{questions: out}, nil
}

// DefaultBank returns the built-in sample questions.
func DefaultBank() *StaticBank {
	bank, err := NewStaticBank(sampleQuestions)
	if err != nil {
		panic("invalid built-in question: " + err.Error())
	}

	return bank
}

// LoadBank reads a JSON array of questions from path.
func LoadBank(path string) (*StaticBank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var questions []Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if len(questions) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrInsufficientQuestions)
	}

	return NewStaticBank(questions)
}

func (b *StaticBank) Len() int {
	return len(b.questions)
}

func (b *StaticBank) Draw(count int) ([]Question, error) {
	if count < 1 || count > len(b.questions) {
		return nil, fmt.Errorf("requested %d of %d: %w", count, len(b.questions), ErrInsufficientQuestions)
	}

	idx := make([]int, len(b.questions))
	for i := range idx {
		idx[i] = i
	}

	// Fisher-Yates shuffle using crypto/rand
	for i := len(idx) - 1; i > 0; i-- {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return nil, err
		}
		j := int(n.Int64())
		idx[i], idx[j] = idx[j], idx[i]
	}

	out := make([]Question, 0, count)
	for _, i := range idx[:count] {
		q := b.questions[i]

		options := make([]string, len(q.Options))
		copy(options, q.Options)
		q.Options = options

		out = append(out, q)
	}

	return out, nil
}

func validateQuestion(q Question) error {
	if strings.TrimSpace(q.Text) == "" {
		return errors.New("empty question text")
	}
	if len(q.Options) != OptionsPerQuestion {
		return fmt.Errorf("want %d options, got %d", OptionsPerQuestion, len(q.Options))
	}
	for i, o := range q.Options {
		if strings.TrimSpace(o) == "" {
			return fmt.Errorf("option %d is empty", i)
		}
	}
	if q.CorrectOptionIndex < 0 || q.CorrectOptionIndex >= len(q.Options) {
		return fmt.Errorf("correct option index %d out of range", q.CorrectOptionIndex)
	}

	return nil
}

var sampleQuestions = []Question{
	{
		Text:               "What is the capital of France?",
		Options:            []string{"London", "Berlin", "Paris", "Madrid"},
		CorrectOptionIndex: 2,
	},
	{
		Text:               "Which planet is known as the Red Planet?",
		Options:            []string{"Venus", "Mars", "Jupiter", "Saturn"},
		CorrectOptionIndex: 1,
	},
	{
		Text:               "Who painted the Mona Lisa?",
		Options:            []string{"Vincent van Gogh", "Pablo Picasso", "Leonardo da Vinci", "Michelangelo"},
		CorrectOptionIndex: 2,
	},
	{
		Text:               "What is the largest mammal in the world?",
		Options:            []string{"Elephant", "Blue Whale", "Giraffe", "Hippopotamus"},
		CorrectOptionIndex: 1,
	},
	{
		Text:               "Which element has the chemical symbol 'O'?",
		Options:            []string{"Gold", "Oxygen", "Osmium", "Oganesson"},
		CorrectOptionIndex: 1,
	},
}
