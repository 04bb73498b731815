package sheets

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var ErrInvalidResponse = errors.New("resposta da planilha em formato inesperado")

// envelopeSchema valida apenas a estrutura externa da resposta gviz
const envelopeSchema = `{
	"type": "object",
	"required": ["status"],
	"properties": {
		"status": {"enum": ["ok", "warning", "error"]},
		"errors": {"type": "array"},
		"table": {
			"type": "object",
			"required": ["cols", "rows"],
			"properties": {
				"cols": {
					"type": "array",
					"items": {
						"type": "object",
						"properties": {
							"id": {"type": "string"},
							"label": {"type": "string"},
							"type": {"type": "string"}
						}
					}
				},
				"rows": {
					"type": "array",
					"items": {
						"type": "object",
						"properties": {
							"c": {"type": "array"}
						}
					}
				}
			}
		}
	},
	"if": {"properties": {"status": {"const": "error"}}},
	"then": {"required": ["errors"]},
	"else": {"required": ["table"]}
}`

var compiledEnvelope = mustCompileEnvelope()

func mustCompileEnvelope() *jsonschema.Schema {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(envelopeSchema))
	if err != nil {
		panic(fmt.Sprintf("schema gviz inválido: %v", err))
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("gviz-envelope.json", doc); err != nil {
		panic(fmt.Sprintf("schema gviz inválido: %v", err))
	}

	schema, err := compiler.Compile("gviz-envelope.json")
	if err != nil {
		panic(fmt.Sprintf("schema gviz inválido: %v", err))
	}

	return schema
}

type gvizResponse struct {
	Status string      `json:"status"`
	Errors []gvizError `json:"errors"`
	Table  *gvizTable  `json:"table"`
}

type gvizError struct {
	Reason          string `json:"reason"`
	Message         string `json:"message"`
	DetailedMessage string `json:"detailed_message"`
}

type gvizTable struct {
	Cols []gvizColumn `json:"cols"`
	Rows []gvizRow    `json:"rows"`
}

type gvizColumn struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

type gvizRow struct {
	C []*Cell `json:"c"`
}

// QueryError é a resposta com status "error" da planilha
type QueryError struct {
	Reason  string
	Message string
}

func (e *QueryError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("planilha retornou erro: %s", e.Reason)
	}
	return fmt.Sprintf("planilha retornou erro: %s: %s", e.Reason, e.Message)
}

// stripWrapper remove o "google.visualization.Query.setResponse(...);" em volta do JSON
func stripWrapper(body []byte) ([]byte, error) {
	start := bytes.IndexByte(body, '{')
	end := bytes.LastIndexByte(body, '}')
	if start < 0 || end < start {
		return nil, ErrInvalidResponse
	}
	return body[start : end+1], nil
}

// ParseResponse converte o corpo bruto do endpoint gviz em uma Table
func ParseResponse(body []byte) (*Table, error) {
	payload, err := stripWrapper(body)
	if err != nil {
		return nil, err
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if err := compiledEnvelope.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	var resp gvizResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	if resp.Status == "error" {
		qerr := &QueryError{Reason: "unknown"}
		if len(resp.Errors) > 0 {
			qerr.Reason = resp.Errors[0].Reason
			qerr.Message = resp.Errors[0].DetailedMessage
			if qerr.Message == "" {
				qerr.Message = resp.Errors[0].Message
			}
		}
		return nil, qerr
	}

	return newTable(resp.Table), nil
}

var gvizDatePattern = regexp.MustCompile(`^Date\((\d+),(\d+),(\d+)(?:,(\d+),(\d+),(\d+))?\)$`)

// ParseGvizDate interpreta "Date(2024,5,1)" com mês iniciando em zero.
// Também aceita datas ISO (YYYY-MM-DD e RFC3339) e dd/mm/yyyy.
func ParseGvizDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	if m := gvizDatePattern.FindStringSubmatch(value); m != nil {
		parts := make([]int, 6)
		for i := 1; i < len(m); i++ {
			if m[i] == "" {
				continue
			}
			n, err := strconv.Atoi(m[i])
			if err != nil {
				return time.Time{}, false
			}
			parts[i-1] = n
		}
		return time.Date(parts[0], time.Month(parts[1]+1), parts[2], parts[3], parts[4], parts[5], 0, time.UTC), true
	}

	for _, layout := range []string{"2006-01-02", time.RFC3339, "02/01/2006"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), true
		}
	}

	return time.Time{}, false
}
