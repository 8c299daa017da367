package app

import (
	"strconv"
	"strings"

	"daraz_reviews/internal/domain"
)

/********** field registry (single source of truth) **********/

var reviewFields = map[string]string{
	"author":  "buyerName",
	"rating":  "rating",
	"date":    "reviewTime",
	"content": "reviewContent",
	"likes":   "likeCount",
}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// optString keeps empty strings: present-but-empty is not unknown.
func optString(m map[string]any, path string) *string {
	if s, ok := lookupAny(m, path).(string); ok {
		return &s
	}
	return nil
}

// optFloat: number at path (float64/int/string like "4,5").
func optFloat(m map[string]any, path string) *float64 {
	switch v := lookupAny(m, path).(type) {
	case float64:
		f := v
		return &f
	case int:
		f := float64(v)
		return &f
	case int64:
		f := float64(v)
		return &f
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
		if s == "" {
			return nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return &f
		}
	}
	return nil
}

// optInt64: integer at path (float64/int/string).
func optInt64(m map[string]any, path string) *int64 {
	switch v := lookupAny(m, path).(type) {
	case float64:
		x := int64(v)
		return &x
	case int:
		x := int64(v)
		return &x
	case int64:
		x := v
		return &x
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return &n
		}
	}
	return nil
}

// optDate keeps the source representation; epoch numbers become their digits.
func optDate(m map[string]any, path string) *string {
	switch v := lookupAny(m, path).(type) {
	case string:
		return &v
	case float64:
		s := strconv.FormatFloat(v, 'f', -1, 64)
		return &s
	}
	return nil
}

/********** review mapper **********/

func mapReview(item map[string]any) domain.Review {
	return domain.Review{
		Author:  optString(item, reviewFields["author"]),
		Rating:  optFloat(item, reviewFields["rating"]),
		Date:    optDate(item, reviewFields["date"]),
		Content: optString(item, reviewFields["content"]),
		Likes:   optInt64(item, reviewFields["likes"]),
	}
}

func mapReviews(items []map[string]any) []domain.Review {
	out := make([]domain.Review, 0, len(items))
	for _, it := range items {
		out = append(out, mapReview(it))
	}
	return out
}
