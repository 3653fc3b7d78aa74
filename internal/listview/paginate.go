package listview

const (
	DefaultPageSize = 10
	windowSize      = 5
)

// NoData is the text of the placeholder row shown for an empty page.
const NoData = "데이터가 없습니다"

type Page[T any] struct {
	Items     []T   `json:"items"`
	Page      int   `json:"page"`
	PageSize  int   `json:"page_size"`
	PageCount int   `json:"page_count"`
	Total     int   `json:"total"`
	Window    []int `json:"window"`
}

// Row is one rendered table row. Exactly one of Item and Placeholder is set.
type Row[T any] struct {
	Index       int    `json:"index,omitempty"`
	Item        *T     `json:"item,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
}

func pageCount(total, size int) int {
	return (total + size - 1) / size
}

func clampPage(page, count int) int {
	if count < 1 {
		count = 1
	}
	switch {
	case page < 1:
		return 1
	case page > count:
		return count
	}
	return page
}

// Bounds clamps page against total records of the given size and returns
// it with the page count. Used when the slicing happens elsewhere.
func Bounds(total, page, size int) (int, int) {
	if size <= 0 {
		size = DefaultPageSize
	}
	count := pageCount(total, size)
	return clampPage(page, count), count
}

// Paginate slices items into the requested page. page is clamped into the
// valid range and size falls back to DefaultPageSize.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	total := len(items)
	count := pageCount(total, size)
	page = clampPage(page, count)

	start := (page - 1) * size
	end := min(start+size, total)
	out := make([]T, 0, end-start)
	out = append(out, items[start:end]...)

	return Page[T]{
		Items:     out,
		Page:      page,
		PageSize:  size,
		PageCount: count,
		Total:     total,
		Window:    Window(page, count),
	}
}

// Window returns the page numbers for the navigation buttons: at most five,
// centred on current and clamped at both ends.
func Window(current, count int) []int {
	if count <= 0 {
		return []int{}
	}
	first := 1
	switch {
	case count <= windowSize:
	case current <= 3:
	case current >= count-2:
		first = count - windowSize + 1
	default:
		first = current - 2
	}
	n := min(count, windowSize)
	out := make([]int, n)
	for i := range out {
		out[i] = first + i
	}
	return out
}

// Rows numbers the page items in descending order across the whole
// projection. An empty page yields a single placeholder row.
func (p Page[T]) Rows() []Row[T] {
	if len(p.Items) == 0 {
		return []Row[T]{{Placeholder: NoData}}
	}
	rows := make([]Row[T], len(p.Items))
	for i := range p.Items {
		rows[i] = Row[T]{
			Index: p.Total - ((p.Page-1)*p.PageSize + i),
			Item:  &p.Items[i],
		}
	}
	return rows
}
