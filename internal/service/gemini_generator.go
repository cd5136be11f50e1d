package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/lmnhat/Goldcrest/config"
	"github.com/lmnhat/Goldcrest/internal/model"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// QuizGenerator is the external generation collaborator. Every method returns
// the raw text blob from the model; callers run it through the repair
// pipeline. No retry or timeout policy lives here, failures surface
// immediately.
type QuizGenerator interface {
	GeneratePretest(weeks []model.Week) (string, error)
	GenerateMainQuiz(weekNumber int, currentTopics, previousTopics []model.Topic) (string, error)
	GenerateRefresherQuiz(weekNumber int, topics []model.Topic) (string, error)
	GenerateDynamicQuiz(weekNumber int, topics []model.Topic, weaknesses []string) (string, error)
	GenerateRecommendation(req RecommendationPrompt) (string, error)
}

// RecommendationPrompt carries the weakest-topic context for a remediation
// resource request.
type RecommendationPrompt struct {
	TopicID            string
	TopicTitle         string
	TopicDescription   string
	StudentPerformance string
}

type geminiGenerator struct {
	client *genai.GenerativeModel
	cfg    *config.Config
}

func NewGeminiGenerator(cfg *config.Config) (QuizGenerator, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. Quiz generation will be non-functional.")
		return &geminiGenerator{cfg: cfg, client: nil}, nil
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}

	return &geminiGenerator{client: client.GenerativeModel(cfg.GeminiModel), cfg: cfg}, nil
}

func (g *geminiGenerator) generate(prompt string) (string, error) {
	if g.client == nil {
		return "", fmt.Errorf("gemini client not initialized (missing API key)")
	}

	ctx := context.Background()
	resp, err := g.client.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Error().Err(err).Msg("Gemini API error during generation")
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no content")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("gemini returned no text content")
	}

	return b.String(), nil
}

const questionFormatInstruction = `Return the response as valid JSON only (no markdown, no extra text), in this exact format:
{
  "questions": [
    {
      "id": "q_1",
      "question": "Question text",
      "options": ["Option A", "Option B", "Option C", "Option D"],
      "correctAnswer": 0,
      "topicId": "topic_1_1",
      "topicTitle": "Topic Title",
      "difficultyLevel": "easy|medium|hard"
    }
  ]
}
Every question must have exactly 4 options and correctAnswer must be the 0-based index of the right option.`

func (g *geminiGenerator) GeneratePretest(weeks []model.Week) (string, error) {
	var b strings.Builder
	b.WriteString("You are an assessment design expert. Create a diagnostic pretest for a course with the following curriculum.\n\n")
	for _, week := range weeks {
		fmt.Fprintf(&b, "Week %d: %s\n", week.WeekNumber, week.Title)
		writeTopics(&b, week.Topics)
	}
	b.WriteString("\nRequirements:\n")
	b.WriteString("- Create 2-3 multiple-choice questions per topic, covering every week.\n")
	b.WriteString("- Tag each question with the topicId and topicTitle it assesses.\n")
	b.WriteString("- Mix difficulty levels so the pretest can discriminate prior knowledge.\n\n")
	b.WriteString(questionFormatInstruction)
	b.WriteString("\n\nGenerate the pretest now:")
	return g.generate(b.String())
}

func (g *geminiGenerator) GenerateMainQuiz(weekNumber int, currentTopics, previousTopics []model.Topic) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an assessment design expert. Create the main quiz for week %d of a course.\n\n", weekNumber)
	b.WriteString("This week's topics:\n")
	writeTopics(&b, currentTopics)
	if len(previousTopics) > 0 {
		b.WriteString("\nPrevious week's topics (for bonus questions):\n")
		writeTopics(&b, previousTopics)
	}
	b.WriteString("\nRequirements:\n")
	b.WriteString("- Create 2-3 multiple-choice questions per current-week topic.\n")
	if len(previousTopics) > 0 {
		b.WriteString("- Add 1-2 bonus questions from the previous week's topics with \"isBonus\": true.\n")
	}
	b.WriteString("- Tag each question with the topicId and topicTitle it assesses.\n\n")
	b.WriteString(questionFormatInstruction)
	b.WriteString("\n\nGenerate the quiz now:")
	return g.generate(b.String())
}

func (g *geminiGenerator) GenerateRefresherQuiz(weekNumber int, topics []model.Topic) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an assessment design expert. Create a refresher quiz for week %d of a course.\n\n", weekNumber)
	b.WriteString("Topics to cover:\n")
	writeTopics(&b, topics)
	b.WriteString("\nRequirements:\n")
	b.WriteString("- Cover the same concepts as the main quiz but with entirely fresh questions.\n")
	b.WriteString("- Create 2 multiple-choice questions per topic.\n")
	b.WriteString("- Tag each question with the topicId and topicTitle it assesses.\n\n")
	b.WriteString(questionFormatInstruction)
	b.WriteString("\n\nGenerate the quiz now:")
	return g.generate(b.String())
}

func (g *geminiGenerator) GenerateDynamicQuiz(weekNumber int, topics []model.Topic, weaknesses []string) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an assessment design expert. Create a personalized remediation quiz for week %d of a course.\n\n", weekNumber)
	b.WriteString("Week topics:\n")
	writeTopics(&b, topics)
	fmt.Fprintf(&b, "\nThe student has shown weakness in these topic ids: %s\n", strings.Join(weaknesses, ", "))
	b.WriteString("\nRequirements:\n")
	b.WriteString("- Focus the questions heavily on the weak topics listed above.\n")
	b.WriteString("- Create 3-4 multiple-choice questions per weak topic, easier first, harder last.\n")
	b.WriteString("- Tag each question with the topicId and topicTitle it assesses.\n\n")
	b.WriteString(questionFormatInstruction)
	b.WriteString("\n\nGenerate the quiz now:")
	return g.generate(b.String())
}

func (g *geminiGenerator) GenerateRecommendation(req RecommendationPrompt) (string, error) {
	var b strings.Builder
	b.WriteString("You are a tutor recommending one study resource for a struggling student.\n\n")
	fmt.Fprintf(&b, "Topic: %s (%s)\n", req.TopicTitle, req.TopicID)
	if req.TopicDescription != "" {
		fmt.Fprintf(&b, "Topic description: %s\n", req.TopicDescription)
	}
	fmt.Fprintf(&b, "Student performance: %s\n\n", req.StudentPerformance)
	b.WriteString(`Return the response as valid JSON only (no markdown, no extra text), in this exact format:
{
  "topicId": "` + req.TopicID + `",
  "topicTitle": "` + req.TopicTitle + `",
  "recommendation": "Short explanation of what to review and why",
  "resourceUrl": "https://...",
  "resourceType": "article|video|pdf|course"
}

Generate the recommendation now:`)
	return g.generate(b.String())
}

func writeTopics(b *strings.Builder, topics []model.Topic) {
	for _, topic := range topics {
		fmt.Fprintf(b, "- %s: %s. %s\n", topic.ID, topic.Title, topic.Description)
	}
}
