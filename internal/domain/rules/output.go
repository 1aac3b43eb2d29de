package rules

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jsamuelsen11/go-business-objects/internal/domain"
)

// Notice is one broken rule in an output.
type Notice struct {
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Item is the output of one collection member.
type Item struct {
	Index  int
	Output *BrokenRulesOutput
}

// BrokenRulesOutput is the read-only view of the broken rules of a model
// graph. Properties map to their notices; a child object nests its output
// under the child's name; a child collection nests an array of item outputs
// that carry their position in "$index".
type BrokenRulesOutput struct {
	props       map[string][]Notice
	children    map[string]*BrokenRulesOutput
	collections map[string][]Item
	count       int
}

// NewBrokenRulesOutput creates an empty output.
func NewBrokenRulesOutput() *BrokenRulesOutput {
	return &BrokenRulesOutput{
		props:       make(map[string][]Notice),
		children:    make(map[string]*BrokenRulesOutput),
		collections: make(map[string][]Item),
	}
}

// Add appends a notice under key.
func (o *BrokenRulesOutput) Add(key string, n Notice) {
	o.props[key] = append(o.props[key], n)
	o.count++
}

// AddChild nests the output of a child object. Empty outputs are skipped.
func (o *BrokenRulesOutput) AddChild(name string, child *BrokenRulesOutput) {
	if child == nil || child.count == 0 {
		return
	}
	o.children[name] = child
	o.count += child.count
}

// AddChildren nests the outputs of collection members. Empty members are
// skipped; the collection is omitted when every member is empty.
func (o *BrokenRulesOutput) AddChildren(name string, items []Item) {
	var kept []Item
	for _, it := range items {
		if it.Output == nil || it.Output.count == 0 {
			continue
		}
		kept = append(kept, it)
		o.count += it.Output.count
	}
	if len(kept) > 0 {
		o.collections[name] = kept
	}
}

// Count returns the number of notices, children included.
func (o *BrokenRulesOutput) Count() int { return o.count }

// Notices returns the notices recorded directly under key.
func (o *BrokenRulesOutput) Notices(key string) []Notice { return o.props[key] }

// Child returns the nested output of a child object.
func (o *BrokenRulesOutput) Child(name string) *BrokenRulesOutput { return o.children[name] }

// Items returns the nested outputs of a child collection.
func (o *BrokenRulesOutput) Items(name string) []Item { return o.collections[name] }

func (o *BrokenRulesOutput) toMap() map[string]any {
	m := make(map[string]any, len(o.props)+len(o.children)+len(o.collections))
	for k, v := range o.props {
		m[k] = v
	}
	for k, child := range o.children {
		m[k] = child.toMap()
	}
	for k, items := range o.collections {
		arr := make([]map[string]any, 0, len(items))
		for _, it := range items {
			im := it.Output.toMap()
			im["$index"] = it.Index
			arr = append(arr, im)
		}
		m[k] = arr
	}
	return m
}

// MarshalJSON implements json.Marshaler.
func (o *BrokenRulesOutput) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.toMap())
}

// BrokenRulesResponse is the failure payload a transport emits when a model
// does not validate.
type BrokenRulesResponse struct {
	Name    string             `json:"name"`
	Status  int                `json:"status"`
	Message string             `json:"message"`
	Data    *BrokenRulesOutput `json:"data"`
	Count   int                `json:"count"`
}

// NewBrokenRulesResponse wraps an output for transport.
func NewBrokenRulesResponse(out *BrokenRulesOutput, message string) *BrokenRulesResponse {
	if message == "" {
		message = "The business object has broken rules."
	}
	return &BrokenRulesResponse{
		Name:    "BrokenRules",
		Status:  http.StatusUnprocessableEntity,
		Message: message,
		Data:    out,
		Count:   out.Count(),
	}
}

// BrokenRulesError carries a BrokenRulesResponse through error returns.
// It matches domain.ErrValidation.
type BrokenRulesError struct {
	Model    string
	Response *BrokenRulesResponse
}

func (e *BrokenRulesError) Error() string {
	return fmt.Sprintf("%s: %s has %d broken rule(s)", domain.ErrValidation.Error(), e.Model, e.Response.Count)
}

func (e *BrokenRulesError) Unwrap() error {
	return domain.ErrValidation
}
