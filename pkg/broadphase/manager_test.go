package broadphase_test

import (
	"sort"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/flier/gobvh/pkg/broadphase"
	"github.com/flier/gobvh/pkg/bv"
	"github.com/flier/gobvh/pkg/math3"
)

func unitBox(x, y, z float64) bv.AABB {
	return bv.NewAABB(math3.Vec3(x, y, z), math3.Vec3(x+1, y+1, z+1))
}

type pair struct{ a, b string }

func canon(a, b string) pair {
	if a > b {
		a, b = b, a
	}

	return pair{a, b}
}

func collectPairs(m *broadphase.Manager[string]) []pair {
	var pairs []pair
	m.Collide(func(a, b string) bool {
		pairs = append(pairs, canon(a, b))

		return false
	})

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].a != pairs[j].a {
			return pairs[i].a < pairs[j].a
		}

		return pairs[i].b < pairs[j].b
	})

	return pairs
}

func TestManager(t *testing.T) {
	Convey("Given an empty manager", t, func() {
		m := broadphase.NewManager[string]()

		Convey("Then it tracks nothing", func() {
			So(m.Len(), ShouldEqual, 0)
			So(m.Collide(func(a, b string) bool { return true }), ShouldBeFalse)
		})

		Convey("When overlapping and disjoint objects are registered", func() {
			m.Register("a", unitBox(0, 0, 0))
			m.Register("b", unitBox(0.5, 0, 0))
			m.Register("c", unitBox(10, 0, 0))

			So(m.Len(), ShouldEqual, 3)

			Convey("Then only the overlapping pair is reported", func() {
				So(collectPairs(m), ShouldResemble, []pair{{"a", "b"}})
			})

			Convey("Then a volume query finds the objects it overlaps", func() {
				var hit []string
				m.CollideVolume(unitBox(9.5, 0, 0), func(obj string) bool {
					hit = append(hit, obj)

					return false
				})

				So(hit, ShouldResemble, []string{"c"})
			})

			Convey("When an object moves into the cluster", func() {
				So(m.Update("c", unitBox(0.8, 0, 0)), ShouldBeTrue)

				pairs := collectPairs(m)
				So(pairs, ShouldResemble, []pair{{"a", "b"}, {"a", "c"}, {"b", "c"}})
			})

			Convey("When an object is unregistered", func() {
				So(m.Unregister("b"), ShouldBeTrue)
				So(m.Unregister("b"), ShouldBeFalse)
				So(m.Len(), ShouldEqual, 2)
				So(collectPairs(m), ShouldBeEmpty)
			})

			Convey("When the enumeration is stopped early", func() {
				m.Register("d", unitBox(0.25, 0, 0))

				calls := 0
				stopped := m.Collide(func(a, b string) bool {
					calls++

					return true
				})

				So(stopped, ShouldBeTrue)
				So(calls, ShouldEqual, 1)
			})

			Convey("When the manager is rebalanced", func() {
				for i := 0; i < 20; i++ {
					m.Register(string(rune('e'+i)), unitBox(float64(20+3*i), 0, 0))
				}

				before := collectPairs(m)
				m.Balance()

				So(m.Len(), ShouldEqual, 23)
				So(collectPairs(m), ShouldResemble, before)

				Convey("And updates still address the right leaves", func() {
					So(m.Update("c", unitBox(0.5, 0.5, 0)), ShouldBeTrue)
					So(collectPairs(m), ShouldResemble, []pair{{"a", "b"}, {"a", "c"}, {"b", "c"}})
				})
			})

			Convey("When the manager is cleared", func() {
				m.Clear()

				So(m.Len(), ShouldEqual, 0)
				So(m.Tree().Empty(), ShouldBeTrue)
			})
		})

		Convey("When a registered object is registered again", func() {
			m.Register("a", unitBox(0, 0, 0))
			m.Register("a", unitBox(5, 5, 5))

			So(m.Len(), ShouldEqual, 1)

			var hit []string
			m.CollideVolume(unitBox(5.2, 5.2, 5.2), func(obj string) bool {
				hit = append(hit, obj)

				return false
			})
			So(hit, ShouldResemble, []string{"a"})
		})
	})
}
