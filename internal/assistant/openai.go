package assistant

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	log "github.com/sirupsen/logrus"

	"github.com/marcus/p75/internal/models"
)

const coachPrompt = `You are "Coach 75", a hypertrophy and nutrition coach helping the user gain lean mass from 68kg to 75kg.
Tone: encouraging, strict but fair, data-driven and concise.
User context: %s
Keep answers short and actionable (under 100 words unless asked for a detailed plan).`

// Options configures the OpenAI-compatible collaborator
type Options struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
	// HTTPClient overrides the transport, mainly for tests
	HTTPClient *http.Client
}

// OpenAI talks to any OpenAI-compatible chat completions endpoint
type OpenAI struct {
	client  openai.Client
	model   string
	timeout time.Duration
}

// New returns an OpenAI collaborator, or Disabled when no key is set
func New(opts Options) Collaborator {
	if strings.TrimSpace(opts.APIKey) == "" {
		log.Debug("assistant: no api key, collaborator disabled")
		return Disabled{}
	}
	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithMaxRetries(0),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}
	if opts.HTTPClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(opts.HTTPClient))
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &OpenAI{
		client:  openai.NewClient(reqOpts...),
		model:   opts.Model,
		timeout: timeout,
	}
}

func (o *OpenAI) Enabled() bool { return true }

func (o *OpenAI) complete(ctx context.Context, params openai.ChatCompletionNewParams) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	params.Model = o.model
	start := time.Now()
	chat, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	log.WithFields(log.Fields{
		"model":    o.model,
		"duration": time.Since(start).Round(time.Millisecond),
	}).Debug("assistant: completion")
	if len(chat.Choices) == 0 {
		return "", errors.New("no choices in response")
	}
	return chat.Choices[0].Message.Content, nil
}

func jsonFormat(name, description string, schema any) openai.ChatCompletionNewParamsResponseFormatUnion {
	return openai.ChatCompletionNewParamsResponseFormatUnion{
		OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
			JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
				Name:        name,
				Description: openai.String(description),
				Schema:      schema,
				Strict:      openai.Bool(true),
			},
		},
	}
}

func (o *OpenAI) ParseMealText(ctx context.Context, text string) []models.FoodItem {
	content, err := o.complete(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(`Analyse the described food intake and estimate macronutrients for each item.
Keep item names in the language the user wrote them in.`),
			openai.UserMessage(text),
		},
		ResponseFormat: jsonFormat("meal", "Food items with estimated macros", mealSchema),
	})
	if err != nil {
		log.Errorf("assistant: parse meal: %s", err)
		return nil
	}
	reply, err := decodeStrict[mealReply](content)
	if err != nil {
		log.Warnf("assistant: parse meal: %s", err)
		return nil
	}

	items := make([]models.FoodItem, 0, len(reply.Items))
	for _, it := range reply.Items {
		items = append(items, models.FoodItem{
			Name: strings.TrimSpace(*it.Name),
			Macros: models.Macros{
				Calories: *it.Calories,
				Protein:  *it.Protein,
				Carbs:    *it.Carbs,
				Fats:     *it.Fats,
			},
		})
	}
	return items
}

func (o *OpenAI) SuggestAlternative(ctx context.Context, exerciseName, targetMuscles string) *Alternative {
	prompt := fmt.Sprintf(`Suggest exactly ONE alternative exercise to replace %q.
Rules:
1. It must train the same primary muscle group: %q.
2. It must be biomechanically similar or equivalent in intensity.`, exerciseName, targetMuscles)

	content, err := o.complete(ctx, openai.ChatCompletionNewParams{
		Messages:       []openai.ChatCompletionMessageParamUnion{openai.UserMessage(prompt)},
		ResponseFormat: jsonFormat("alternative", "One replacement exercise", alternativeSchema),
	})
	if err != nil {
		log.Errorf("assistant: suggest alternative: %s", err)
		return nil
	}
	reply, err := decodeStrict[alternativeReply](content)
	if err != nil {
		log.Warnf("assistant: suggest alternative: %s", err)
		return nil
	}
	return &Alternative{
		Name:        strings.TrimSpace(*reply.Name),
		Description: strings.TrimSpace(*reply.Description),
	}
}

func (o *OpenAI) SuggestNewExercise(ctx context.Context, routineName string, existing []string) *NewExercise {
	prompt := fmt.Sprintf(`Suggest one new exercise to add to the workout routine %q.
Exercises already in the routine: %s.
The exercise must complement the existing ones by training a different angle or a muscle the routine misses.`,
		routineName, strings.Join(existing, ", "))

	content, err := o.complete(ctx, openai.ChatCompletionNewParams{
		Messages:       []openai.ChatCompletionMessageParamUnion{openai.UserMessage(prompt)},
		ResponseFormat: jsonFormat("new_exercise", "One exercise to add", newExerciseSchema),
	})
	if err != nil {
		log.Errorf("assistant: suggest exercise: %s", err)
		return nil
	}
	reply, err := decodeStrict[newExerciseReply](content)
	if err != nil {
		log.Warnf("assistant: suggest exercise: %s", err)
		return nil
	}
	return &NewExercise{
		Name:          strings.TrimSpace(*reply.Name),
		Description:   strings.TrimSpace(*reply.Description),
		TargetMuscles: strings.TrimSpace(*reply.TargetMuscles),
		Sets:          *reply.Sets,
		Reps:          strings.TrimSpace(*reply.Reps),
	}
}

func (o *OpenAI) Chat(ctx context.Context, message string, history []models.ChatMessage, userContext string) string {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+2)
	messages = append(messages, openai.SystemMessage(fmt.Sprintf(coachPrompt, userContext)))
	for _, m := range history {
		switch m.Role {
		case models.RoleUser:
			messages = append(messages, openai.UserMessage(m.Text))
		case models.RoleModel:
			messages = append(messages, openai.AssistantMessage(m.Text))
		}
	}
	messages = append(messages, openai.UserMessage(message))

	content, err := o.complete(ctx, openai.ChatCompletionNewParams{Messages: messages})
	if err != nil {
		log.Errorf("assistant: chat: %s", err)
		return ChatErrorReply
	}
	if strings.TrimSpace(content) == "" {
		log.Warn("assistant: chat: empty reply")
		return ChatEmptyReply
	}
	return content
}
