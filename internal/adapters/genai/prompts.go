package genai_adapter

import (
	"fmt"
	"property-service/internal/core/domain"
	"strconv"
	"strings"
)

const (
	answerInstruction = "You are a helpful real-estate assistant. Answer questions about properties, " +
		"neighbourhoods, buying and renting clearly and concisely. If you do not know, say so."

	descriptionInstruction = "You write engaging, factual real-estate listing descriptions. " +
		"Use only the details provided. Keep it under 150 words and do not invent amenities."

	comparisonInstruction = "You compare real-estate properties for a prospective buyer. " +
		"Highlight the trade-offs in price, space, location and amenities, then give a short recommendation."
)

// describeProperty превращает дескриптор в блок текста для промпта, пустые поля пропускаются
func describeProperty(p domain.PropertyDescriptor) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", p.Name)
	if p.Address != "" {
		fmt.Fprintf(&b, "Address: %s\n", p.Address)
	}
	if p.Location != "" {
		fmt.Fprintf(&b, "Coordinates: %s\n", p.Location)
	}
	if p.Price > 0 {
		fmt.Fprintf(&b, "Price: %s\n", strconv.FormatFloat(p.Price, 'f', -1, 64))
	}
	if p.Bedrooms > 0 {
		fmt.Fprintf(&b, "Bedrooms: %d\n", p.Bedrooms)
	}
	if p.Sqft > 0 {
		fmt.Fprintf(&b, "Area: %d sqft\n", p.Sqft)
	}
	if len(p.Amenities) > 0 {
		fmt.Fprintf(&b, "Amenities: %s\n", strings.Join(p.Amenities, ", "))
	}
	return b.String()
}

func descriptionPrompt(p domain.PropertyDescriptor) string {
	return "Write a listing description for this property:\n\n" + describeProperty(p)
}

func comparisonPrompt(properties []domain.PropertyDescriptor) string {
	var b strings.Builder
	b.WriteString("Compare the following properties:\n")
	for i, p := range properties {
		fmt.Fprintf(&b, "\nProperty %d\n%s", i+1, describeProperty(p))
	}
	return b.String()
}
