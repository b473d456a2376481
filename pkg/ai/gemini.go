package ai

import (
	"context"
	"fmt"
	"strings"

	"sparkz/pkg/config"
	"sparkz/pkg/logger"

	"google.golang.org/genai"
)

const (
	// FallbackMissingKey is returned when no API credential is configured.
	FallbackMissingKey = "Descripción no disponible (API Key faltante). Por favor añade tu clave para usar la IA."
	// FallbackError is returned when the remote call fails for any reason.
	FallbackError = "Hubo un error al generar la descripción con SPARKZ AI. Por favor intenta escribirla manualmente."
)

// Describer generates short promotional project descriptions with Gemini.
// It never surfaces errors to callers: every failure path degrades to one of
// the fallback strings above, which are valid (if unhelpful) output.
type Describer struct {
	client *genai.Client
	model  string
	logger *logger.Logger
}

func NewDescriber(cfg *config.Config, log *logger.Logger) *Describer {
	d := &Describer{
		model:  cfg.GeminiModel,
		logger: log,
	}

	if cfg.GeminiAPIKey == "" {
		log.Warn("GEMINI_API_KEY is not set, description generation will return placeholder text")
		return d
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: cfg.GeminiAPIKey,
	})
	if err != nil {
		log.Error("Failed to create Gemini client: %v", err)
		return d
	}

	d.client = client
	return d
}

// ProjectDescription produces a promotional description (Spanish, at most 80
// words) for the given project details, or a fallback string.
func (d *Describer) ProjectDescription(ctx context.Context, title, category, keywords string) string {
	if d.client == nil {
		return FallbackMissingKey
	}

	prompt := buildPrompt(title, category, keywords)

	resp, err := d.client.Models.GenerateContent(ctx, d.model, genai.Text(prompt), nil)
	if err != nil {
		d.logger.Error("Error generating description: %v", err)
		return FallbackError
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		d.logger.Error("Gemini returned an empty description for title=%q", title)
		return FallbackError
	}

	return text
}

func buildPrompt(title, category, keywords string) string {
	return fmt.Sprintf(`Eres un experto en marketing digital para una plataforma de software y libros llamada SPARKZ.
Escribe una descripción atractiva, profesional y emocionante (máximo 80 palabras) para un nuevo proyecto subido a la plataforma.

Detalles del proyecto:
- Título: %s
- Categoría: %s
- Palabras clave/Ideas: %s

La respuesta debe ser solo el texto de la descripción en español. No añadas títulos ni introducciones.`, title, category, keywords)
}
