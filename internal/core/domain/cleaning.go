package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Правила очистки повторяют формат карточек ImmoScout24:
// "3.5 Zimmer", "75 m²", "CHF 1’250.–", "Musterstrasse 1, 8001 Zürich".
var (
	numberPattern   = regexp.MustCompile(`[\d.]+`)
	intPattern      = regexp.MustCompile(`\d+`)
	locationPattern = regexp.MustCompile(`^(?:.*,\s*)?(\d{4})\s+(\S.*)$`)
)

// CleanScrapedListing превращает сырое объявление в типизированную запись.
// Запись, у которой не парсится хотя бы одно из обязательных полей,
// считается malformed: пропускается и учитывается в статистике,
// но не прерывает загрузку всей пачки.
func CleanScrapedListing(s ScrapedListing) (RawListing, error) {
	rooms, err := parseLeadingNumber(s.Rooms)
	if err != nil {
		return RawListing{}, fmt.Errorf("malformed rooms %q: %w", s.Rooms, err)
	}

	size, err := parseLeadingNumber(s.Size)
	if err != nil {
		return RawListing{}, fmt.Errorf("malformed size %q: %w", s.Size, err)
	}

	price, err := parsePrice(s.Price)
	if err != nil {
		return RawListing{}, fmt.Errorf("malformed price %q: %w", s.Price, err)
	}

	postalCode, locality, err := parseLocation(s.Location)
	if err != nil {
		return RawListing{}, fmt.Errorf("malformed location %q: %w", s.Location, err)
	}

	return RawListing{
		Rooms:         rooms,
		LivingAreaM2:  size,
		Price:         price,
		PostalCode:    postalCode,
		Locality:      locality,
		RawAttributes: s.Attributes,
	}, nil
}

func parseLeadingNumber(raw string) (float64, error) {
	match := numberPattern.FindString(raw)
	if match == "" {
		return 0, fmt.Errorf("no numeric value found")
	}
	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, err
	}
	return value, nil
}

// parsePrice убирает валютные украшения ("CHF", "’", ".–") и берет целую часть.
func parsePrice(raw string) (float64, error) {
	cleaned := strings.NewReplacer("’", "", "'", "", "CHF", "", ".–", "").Replace(raw)
	match := intPattern.FindString(cleaned)
	if match == "" {
		return 0, fmt.Errorf("no numeric value found")
	}
	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, err
	}
	return value, nil
}

// parseLocation выделяет четырехзначный индекс и название населенного пункта.
func parseLocation(raw string) (postalCode, locality string, err error) {
	groups := locationPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if groups == nil {
		return "", "", fmt.Errorf("no postal code found")
	}
	return groups[1], strings.TrimSpace(groups[2]), nil
}
