package banana

import "strings"

// The upstream output schema varies by model. Extraction walks an explicit
// ordered list of container fields and, inside each, an ordered list of
// url-ish keys. Anything outside these rules is treated as "no result".
var (
	containerKeys = []string{"modelOutputs", "output", "outputs", "result", "data"}
	urlKeys       = []string{"result_url", "resultUrl", "image_url", "imageUrl", "output_url", "url", "image"}
)

func extractResultURL(decoded map[string]any) string {
	if decoded == nil {
		return ""
	}
	// A url-ish key may also sit at the top level.
	if url := urlFromObject(decoded); url != "" {
		return url
	}
	for _, key := range containerKeys {
		value, ok := decoded[key]
		if !ok {
			continue
		}
		if url := urlFromValue(value); url != "" {
			return url
		}
	}
	return ""
}

func urlFromValue(value any) string {
	switch v := value.(type) {
	case string:
		return trimURL(v)
	case map[string]any:
		return urlFromObject(v)
	case []any:
		if len(v) == 0 {
			return ""
		}
		switch first := v[0].(type) {
		case string:
			return trimURL(first)
		case map[string]any:
			return urlFromObject(first)
		}
	}
	return ""
}

func urlFromObject(obj map[string]any) string {
	for _, key := range urlKeys {
		if s, ok := obj[key].(string); ok {
			if url := trimURL(s); url != "" {
				return url
			}
		}
	}
	return ""
}

func trimURL(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return ""
	}
	return s
}
