package todo

import "github.com/jsamuelsen11/go-business-objects/internal/domain/model"

// CalculateProgress returns the average progress percentage across the live
// todos of list. Returns 0 if the list is empty.
func CalculateProgress(list *model.Collection) int {
	items := list.Items()
	if len(items) == 0 {
		return 0
	}
	var total int64
	for _, it := range items {
		p, _ := model.Value[int64](it, FieldProgress)
		total += p
	}
	return int(total / int64(len(items)))
}
