package domain

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// MaxDescriptionRunes limits store descriptions.
	MaxDescriptionRunes = 2000
	// MaxReviewRunes limits review bodies.
	MaxReviewRunes = 1000
	// MinRating and MaxRating bound a review rating.
	MinRating = 1
	MaxRating = 5
)

func NewStoreName(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", errors.New("Please enter a store name!")
	}
	return trimmed, nil
}

func NewDescription(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if utf8.RuneCountInString(trimmed) > MaxDescriptionRunes {
		return "", fmt.Errorf("description must be at most %d characters", MaxDescriptionRunes)
	}
	return trimmed, nil
}

// NewCoordinates expects exactly [longitude, latitude].
func NewCoordinates(values []float64) ([]float64, error) {
	if len(values) == 0 {
		return nil, errors.New("You must supply coordinates!")
	}
	if len(values) != 2 {
		return nil, errors.New("coordinates must be [longitude, latitude]")
	}
	lng, lat := values[0], values[1]
	if lng < -180 || lng > 180 {
		return nil, fmt.Errorf("longitude %v out of range", lng)
	}
	if lat < -90 || lat > 90 {
		return nil, fmt.Errorf("latitude %v out of range", lat)
	}
	return []float64{lng, lat}, nil
}

func NewAddress(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", errors.New("You must supply an address!")
	}
	return trimmed, nil
}

func NewAuthor(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", errors.New("You must supply an author")
	}
	return trimmed, nil
}

func NewPhoto(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) > 2048 {
		return "", errors.New("photo reference is too long")
	}
	return trimmed, nil
}

// NewTagList trims labels and drops empty ones. Order and duplicates are kept.
func NewTagList(values []string) []string {
	result := make([]string, 0, len(values))
	for _, raw := range values {
		tag := strings.TrimSpace(raw)
		if tag == "" {
			continue
		}
		result = append(result, tag)
	}
	return result
}

func NewRating(value int) (int, error) {
	if value < MinRating || value > MaxRating {
		return 0, fmt.Errorf("rating must be between %d and %d", MinRating, MaxRating)
	}
	return value, nil
}

func NewReviewText(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", errors.New("Your review must have text!")
	}
	if utf8.RuneCountInString(trimmed) > MaxReviewRunes {
		return "", fmt.Errorf("review must be at most %d characters", MaxReviewRunes)
	}
	return trimmed, nil
}
