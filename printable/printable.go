// Package printable shows how Go replaces inheritance-based dispatch:
// behavior is selected through an interface at run time, and "derived"
// types reuse "base" fields by embedding.
//
// Embedding is not inheritance. An Employee is not a Person; it has one.
// Copying emp.Person out of an Employee is the explicit, visible form of
// object slicing, and the copy prints as a plain Person.
package printable

import (
	"fmt"
	"io"
	"strings"

	"github.com/mohae/deepcopy"
)

// Printable is anything that can render itself.
type Printable interface {
	Print(w io.Writer)
}

// Releaser is implemented by values that report their own teardown.
type Releaser interface {
	Release(w io.Writer)
}

// Person is the base value.
type Person struct {
	Name string
}

func (p Person) Print(w io.Writer) { fmt.Fprintf(w, "(%s)\n", p.Name) }

func (p Person) Release(w io.Writer) { fmt.Fprintf(w, "%s is napping\n", p.Name) }

// Employee embeds Person and declares its own Print and Release. Through a
// Printable the Employee methods always win; the promoted Person methods are
// still reachable as e.Person.Print.
type Employee struct {
	Person
	Age    int
	Skills []string
}

func (e Employee) Print(w io.Writer) {
	fmt.Fprintln(w, "{")
	e.Person.Print(w)
	fmt.Fprintf(w, "(age:%d)\n", e.Age)
	if len(e.Skills) > 0 {
		fmt.Fprintf(w, "(skills:%s)\n", strings.Join(e.Skills, ","))
	}
	fmt.Fprintln(w, "}")
}

// Release tears down the Employee part first, then the embedded Person.
func (e Employee) Release(w io.Writer) {
	fmt.Fprintf(w, "Employee %s released\n", e.Name)
	e.Person.Release(w)
}

// Describe renders p through dynamic dispatch.
func Describe(p Printable) string {
	var b strings.Builder
	p.Print(&b)
	return b.String()
}

// RenderAll writes every item in order.
func RenderAll(w io.Writer, items []Printable) {
	for _, it := range items {
		it.Print(w)
	}
}

// Clone returns a deep copy of p with the same dynamic type, so nothing is
// sliced away and slices inside the value are not shared.
func Clone(p Printable) Printable {
	if p == nil {
		return nil
	}
	return deepcopy.Copy(p).(Printable)
}

// ReleaseAll releases items in reverse order, the way stacked locals are
// torn down when a scope exits.
func ReleaseAll(w io.Writer, items []Releaser) {
	for i := len(items) - 1; i >= 0; i-- {
		items[i].Release(w)
	}
}
