package openai

import (
	"encoding/json"
	"fmt"
	"strings"
)

const extractionSystemPrompt = `You are an entity extraction assistant for an e-commerce shopping platform. Given a shopper's question, identify the specific product names it mentions. Return ONLY valid JSON with this schema:
{
  "products": string[] (0-5 product names, exactly as a catalog would list them)
}
Include only concrete product names such as "Galaxy S21" or "MacBook Air". Do not include bare brands, categories, or generic words like "phone" or "laptop". Return an empty array when the question names no specific product.`

func buildExtractionUserPrompt(query string) string {
	return fmt.Sprintf("Question: %s\n", query)
}

type extractionPayload struct {
	Products []string `json:"products"`
}

func parseExtractionPayload(data []byte) ([]string, error) {
	var payload extractionPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse extraction payload: %w", err)
	}

	names := make([]string, 0, len(payload.Products))
	for _, name := range payload.Products {
		name = strings.TrimSpace(name)
		if name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}
