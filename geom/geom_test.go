package geom_test

import (
	"slices"
	"testing"

	"deedles.dev/imgcore/geom"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestRect(t *testing.T) {
	r := geom.XYWH[uint32](2, 3, 4, 5)
	require.Equal(t, geom.Rt[uint32](2, 3, 6, 8), r)
	require.Equal(t, geom.Pt[uint32](4, 5), r.Size())
	require.True(t, geom.Pt[uint32](5, 7).In(r))
	require.False(t, geom.Pt[uint32](6, 7).In(r))

	require.True(t, r.Contains(geom.XYWH[uint32](2, 3, 4, 5)))
	require.False(t, r.Contains(geom.XYWH[uint32](2, 3, 5, 5)))
	require.True(t, r.Contains(geom.Rect[uint32]{}))

	require.Equal(t, geom.Rt[uint32](4, 3, 6, 5), r.Intersect(geom.Rt[uint32](4, 0, 10, 5)))
	require.Equal(t, geom.Rect[uint32]{}, r.Intersect(geom.Rt[uint32](10, 10, 20, 20)))

	require.Equal(t, "(2,3)-(6,8)", r.String())
}

func TestTiledGrid(t *testing.T) {
	r := geom.Rt(0, 0, 5, 3)
	got := slices.Collect(geom.TiledGrid(r, geom.Pt(2, 2)))
	want := []geom.Rect[int]{
		geom.Rt(0, 0, 2, 2), geom.Rt(2, 0, 4, 2), geom.Rt(4, 0, 6, 2),
		geom.Rt(0, 2, 2, 4), geom.Rt(2, 2, 4, 4), geom.Rt(4, 2, 6, 4),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}

	require.Equal(t, geom.Pt(3, 2), geom.GridSize(r, geom.Pt(2, 2)))
	require.Equal(t, len(got), 3*2)

	strips := slices.Collect(geom.TiledGrid(geom.Rt[uint32](0, 0, 7, 10), geom.Pt[uint32](7, 4)))
	require.Equal(t, []geom.Rect[uint32]{
		geom.Rt[uint32](0, 0, 7, 4),
		geom.Rt[uint32](0, 4, 7, 8),
		geom.Rt[uint32](0, 8, 7, 12),
	}, strips)

	require.Empty(t, slices.Collect(geom.TiledGrid(r, geom.Pt(0, 2))))
	require.Equal(t, geom.Point[int]{}, geom.GridSize(geom.Rect[int]{}, geom.Pt(2, 2)))
}

func TestStacks(t *testing.T) {
	var rows []geom.Rect[int]
	for r := range geom.VerticalStack(geom.XYWH(1, 1, 3, 2)) {
		if len(rows) == 3 {
			break
		}
		rows = append(rows, r)
	}
	require.Equal(t, []geom.Rect[int]{geom.XYWH(1, 1, 3, 2), geom.XYWH(1, 3, 3, 2), geom.XYWH(1, 5, 3, 2)}, rows)

	var cols []geom.Rect[float64]
	for r := range geom.HorizontalStack(geom.XYWH(0, 0, 0.5, 1.0)) {
		if len(cols) == 2 {
			break
		}
		cols = append(cols, r)
	}
	require.Equal(t, []geom.Rect[float64]{geom.XYWH(0, 0, 0.5, 1.0), geom.XYWH(0.5, 0, 0.5, 1.0)}, cols)
}
