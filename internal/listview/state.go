package listview

// State holds the filter and page selection of one list view. Changing any
// filter sends the view back to page 1.
type State struct {
	query    Query
	page     int
	pageSize int
}

func NewState(pageSize int) *State {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &State{page: 1, pageSize: pageSize}
}

func (s *State) Query() Query  { return s.query }
func (s *State) Page() int     { return s.page }
func (s *State) PageSize() int { return s.pageSize }

func (s *State) set(field *string, v string) {
	if *field == v {
		return
	}
	*field = v
	s.page = 1
}

func (s *State) SetSearch(v string) { s.set(&s.query.Search, v) }
func (s *State) SetStatus(v string) { s.set(&s.query.Status, v) }
func (s *State) SetKind(v string)   { s.set(&s.query.Kind, v) }
func (s *State) SetOrder(v string)  { s.set(&s.query.Order, v) }

// Apply sets every filter of q at once.
func (s *State) Apply(q Query) {
	s.SetSearch(q.Search)
	s.SetStatus(q.Status)
	s.SetKind(q.Kind)
	s.SetOrder(q.Order)
}

// SetPage records the requested page. The view clamps it on render.
func (s *State) SetPage(p int) {
	if p < 1 {
		p = 1
	}
	s.page = p
}

// View binds a store to a list state.
type View[T any] struct {
	Store *Store[T]
	State *State
}

func NewView[T any](store *Store[T], pageSize int) *View[T] {
	return &View[T]{Store: store, State: NewState(pageSize)}
}

// Projected is the filtered and sorted sequence before pagination.
func (v *View[T]) Projected() []T {
	return Project(v.Store.All(), v.Store.Schema(), v.State.Query())
}

// Current renders the active page and writes the clamped page number back
// into the state.
func (v *View[T]) Current() Page[T] {
	p := Paginate(v.Projected(), v.State.page, v.State.pageSize)
	v.State.page = p.Page
	return p
}
