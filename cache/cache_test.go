// seehuhn.de/go/segnet - segment network preparation for network analysis
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package cache

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/segnet"
)

type StoreSuite struct {
	suite.Suite
	ctx   context.Context
	store *Store
}

func (s *StoreSuite) SetupTest() {
	s.ctx = context.Background()
	store, err := Open(":memory:")
	s.Require().NoError(err)
	s.store = store
}

func (s *StoreSuite) TearDownTest() {
	s.Require().NoError(s.store.Close())
}

func square() []segnet.Curve {
	return []segnet.Curve{
		segnet.Polyline{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: 0, Y: 0}},
	}
}

func (s *StoreSuite) prepare(opts *segnet.Options) *segnet.GraphInput {
	g, _, err := segnet.Prepare(s.ctx, square(), opts)
	s.Require().NoError(err)
	return g
}

func (s *StoreSuite) TestPutGet() {
	g := s.prepare(nil)
	s.Require().NoError(s.store.Put(s.ctx, g))

	got, err := s.store.Get(s.ctx, g.Hash())
	s.Require().NoError(err)
	s.Equal(g.Hash(), got.Hash())
	s.Equal(g.Coords(), got.Coords())
	s.Equal(g.Indices(), got.Indices())
	s.Equal(g.BBox(), got.BBox())
}

func (s *StoreSuite) TestFlatLayout() {
	opts := segnet.DefaultOptions()
	opts.BuildIndices = false
	g := s.prepare(opts)
	s.Require().NoError(s.store.Put(s.ctx, g))

	got, err := s.store.Get(s.ctx, g.Hash())
	s.Require().NoError(err)
	s.False(got.Indexed())
	s.Nil(got.Indices())
	s.Equal(g.Coords(), got.Coords())
}

func (s *StoreSuite) TestNotFound() {
	_, err := s.store.Get(s.ctx, "nope")
	s.ErrorIs(err, ErrNotFound)

	ok, err := s.store.Has(s.ctx, "nope")
	s.Require().NoError(err)
	s.False(ok)
}

func (s *StoreSuite) TestPutTwice() {
	g := s.prepare(nil)
	s.Require().NoError(s.store.Put(s.ctx, g))
	s.Require().NoError(s.store.Put(s.ctx, g))

	n, err := s.store.Len(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, n)
}

func (s *StoreSuite) TestDelete() {
	g := s.prepare(nil)
	s.Require().NoError(s.store.Put(s.ctx, g))
	s.Require().NoError(s.store.Delete(s.ctx, g.Hash()))

	ok, err := s.store.Has(s.ctx, g.Hash())
	s.Require().NoError(err)
	s.False(ok)
}

func (s *StoreSuite) TestPrepareCached() {
	g1, rep1, err := s.store.PrepareCached(s.ctx, square(), nil)
	s.Require().NoError(err)
	s.Equal(4, rep1.FinalEdges)

	g2, _, err := s.store.PrepareCached(s.ctx, square(), nil)
	s.Require().NoError(err)
	s.Equal(g1.Hash(), g2.Hash())

	n, err := s.store.Len(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, n)
}

func (s *StoreSuite) TestPrepareCachedFailure() {
	curves := []segnet.Curve{segnet.Line{From: vec.Vec2{}, To: vec.Vec2{}}}
	g, rep, err := s.store.PrepareCached(s.ctx, curves, nil)
	s.ErrorIs(err, segnet.ErrInputEmpty)
	s.Nil(g)
	s.NotNil(rep)

	n, err := s.store.Len(s.ctx)
	s.Require().NoError(err)
	s.Zero(n)
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func TestFileStore(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "graphs.db")
	ctx := context.Background()

	g, _, err := segnet.Prepare(ctx, square(), nil)
	require.NoError(t, err)

	store, err := Open(fname)
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, g))
	require.NoError(t, store.Close())

	store, err = Open(fname)
	require.NoError(t, err)
	defer store.Close()

	got, err := store.Get(ctx, g.Hash())
	require.NoError(t, err)
	require.Equal(t, g.Hash(), got.Hash())
}
