package service

import (
	"fmt"
	"strings"
)

const (
	// MinTranscriptLength is the rune count a transcript must exceed to be
	// used as quiz source material.
	MinTranscriptLength = 50
	// MaxTranscriptChars caps how many runes of transcript go into the prompt.
	MaxTranscriptChars = 30000

	QuestionCount = 5
	OptionCount   = 4

	DefaultTopic = "Video Assessment"
)

type PromptKind int

const (
	TranscriptAvailable PromptKind = iota
	MetadataOnly
)

func (k PromptKind) String() string {
	switch k {
	case TranscriptAvailable:
		return "transcript"
	case MetadataOnly:
		return "metadata"
	default:
		return "unknown"
	}
}

// PromptSource is the material a quiz prompt is built from. Transcript is set
// only for TranscriptAvailable; Title and VideoURL only for MetadataOnly.
type PromptSource struct {
	Kind       PromptKind
	Transcript string
	Title      string
	VideoURL   string
}

// NewPromptSource picks TranscriptAvailable when the transcript is long enough
// and truncates it to MaxTranscriptChars. Otherwise it falls back to metadata.
func NewPromptSource(videoURL, transcript, title string) PromptSource {
	runes := []rune(transcript)
	if len(runes) > MinTranscriptLength {
		if len(runes) > MaxTranscriptChars {
			runes = runes[:MaxTranscriptChars]
		}
		return PromptSource{Kind: TranscriptAvailable, Transcript: string(runes)}
	}
	return PromptSource{Kind: MetadataOnly, Title: strings.TrimSpace(title), VideoURL: videoURL}
}

func (p PromptSource) Prompt() string {
	var b strings.Builder
	switch p.Kind {
	case TranscriptAvailable:
		b.WriteString("You are an educational expert. Create a multiple-choice quiz based STRICTLY on the provided video transcript below.\n\n")
		b.WriteString("Rules:\n")
		b.WriteString("1. Ignore any intro/outro fluff (sponsors, liking, subscribing).\n")
		b.WriteString("2. Focus on the core educational concepts taught.\n")
		b.WriteString(fmt.Sprintf("3. Generate exactly %d questions.\n", QuestionCount))
		b.WriteString(fmt.Sprintf("4. Provide %d options per question.\n", OptionCount))
		b.WriteString(fmt.Sprintf("5. Indicate the correct answer index (0-%d).\n\n", OptionCount-1))
		b.WriteString("TRANSCRIPT:\n\"")
		b.WriteString(p.Transcript)
		b.WriteString("\"\n")
	default:
		b.WriteString("You are an educational expert. Create a multiple-choice quiz about the following video content.\n")
		if p.Title != "" {
			b.WriteString(fmt.Sprintf("The video is titled: %q.\n\n", p.Title))
		} else {
			b.WriteString(fmt.Sprintf("The video URL is: %q. Try to infer the topic from the URL.\n\n", p.VideoURL))
		}
		b.WriteString("Since the full transcript is unavailable, generate general knowledge questions relevant to this specific topic.\n")
		b.WriteString(fmt.Sprintf("Generate exactly %d questions.\n", QuestionCount))
		b.WriteString(fmt.Sprintf("For each question, provide %d options and the index of the correct answer (0-%d).\n", OptionCount, OptionCount-1))
	}
	return b.String()
}
