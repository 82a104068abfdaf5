package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/yukikurage/project-tracker-api/internal/models"
)

// TaskSuggester drafts tasks for a project from free text.
type TaskSuggester interface {
	SuggestTasks(ctx context.Context, project models.Project, text string) ([]GeneratedTask, error)
}

// GeneratedTask is a task draft returned by a TaskSuggester.
type GeneratedTask struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Priority    models.Priority `json:"priority"`
	DueDate     *time.Time      `json:"dueDate"`
}

type AIService struct {
	client *openai.Client
	model  string
}

func NewAIService(apiKey, model string) *AIService {
	if model == "" {
		model = openai.GPT4o
	}
	return &AIService{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// SuggestTasks asks the chat model to extract tasks for project from text.
func (s *AIService) SuggestTasks(ctx context.Context, project models.Project, text string) ([]GeneratedTask, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: buildSuggestPrompt(project, text, time.Now()),
				},
			},
			Temperature: 0.3,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	return parseGeneratedTasks(resp.Choices[0].Message.Content)
}

func buildSuggestPrompt(project models.Project, text string, now time.Time) string {
	return fmt.Sprintf(`Eres un asistente que extrae tareas. Del siguiente texto, extrae tareas concretas para el proyecto indicado.

Fecha y hora actual: %s

Proyecto: %s
Descripción del proyecto: %s

Texto:
%s

Devuelve un arreglo JSON con este formato:
[
  {
    "title": "título breve de la tarea",
    "description": "detalle de la tarea",
    "priority": "low | medium | high",
    "dueDate": "fecha límite en ISO8601 (ej. 2025-10-28T23:59:59Z) o null si no se menciona"
  }
]

Notas:
- Si no hay tareas, devuelve []
- Convierte expresiones relativas ("mañana", "la próxima semana") en fechas concretas
- Devuelve solo JSON, sin texto adicional`, now.Format("2006-01-02 15:04:05"), project.Title, project.Description, text)
}

// parseGeneratedTasks decodes the model reply, tolerating a fenced code block.
func parseGeneratedTasks(content string) ([]GeneratedTask, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var tasks []GeneratedTask
	if err := json.Unmarshal([]byte(content), &tasks); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	return tasks, nil
}
