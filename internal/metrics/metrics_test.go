package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/ariefcatur/agri-admin/internal/listview"
)

type row struct {
	ID     int64
	Status string
}

func TestWatch(t *testing.T) {
	t.Parallel()

	s := listview.NewStore(&listview.Schema[row]{
		Name:      "rows",
		ID:        func(r row) int64 { return r.ID },
		SetID:     func(r *row, id int64) { r.ID = id },
		Terminal:  "deleted",
		SetStatus: func(r *row, st string) { r.Status = st },
	}, []row{{ID: 1}, {ID: 2}})

	c := New(prometheus.NewRegistry())
	Watch(c, s)
	assert.Equal(t, 2.0, testutil.ToFloat64(c.Records.WithLabelValues("rows")))

	s.Add(row{})
	s.Delete(1)
	s.RemoveByID(2)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.Records.WithLabelValues("rows")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Mutations.WithLabelValues("rows", string(listview.OpAdd))))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Mutations.WithLabelValues("rows", string(listview.OpSoftDelete))))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Mutations.WithLabelValues("rows", string(listview.OpRemove))))
}
