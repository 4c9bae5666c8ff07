package scenario

import (
	"fmt"

	"github.com/marcodamonte/objectmodel/smartarray"
)

// part0 creates an array per loop iteration and keeps one of them by move
// assignment. Every other array is released at the end of its iteration.
func part0(env Env) error {
	b := smartarray.New[int](env.opts()...)
	defer b.Release()

	for i := 0; i <= 100; i++ {
		a := smartarray.NewSized[int](10, fmt.Sprintf("loop%d", i), env.opts()...)
		if err := a.Write(3, 123123); err != nil {
			a.Release()
			return err
		}
		if i == 50 {
			b.MoveFrom(a)
		}
		a.Release()
	}

	v, err := b.At(3)
	if err != nil {
		return err
	}
	fmt.Fprintln(env.Out, v)

	c := b.Clone()
	defer c.Release()
	v, err = c.At(3)
	if err != nil {
		return err
	}
	fmt.Fprintln(env.Out, v)
	return nil
}

func part1(env Env) error {
	def := smartarray.New[int](env.opts()...)
	defer def.Release()
	numbers := smartarray.NewSized[int](6, "Numbers", env.opts()...)
	defer numbers.Release()

	numbers.FillStep(10, -1)
	fmt.Fprintln(env.Out, "Original SmartArray:", numbers)

	numbers.Sort()
	fmt.Fprintln(env.Out, "Sorted SmartArray:", numbers)
	return nil
}

func part2(env Env) error {
	array1 := smartarray.NewSized[int](5, "Array1", env.opts()...)
	defer array1.Release()
	array1.Fill(10)
	fmt.Fprintln(env.Out, array1)

	array2 := array1.Clone()
	defer array2.Release()
	fmt.Fprintln(env.Out, array2)
	fmt.Fprintln(env.Out, "Array2 created as a copy of Array1.")
	return nil
}

func part3(env Env) error {
	array1 := smartarray.NewSized[int](5, "Array1", env.opts()...)
	defer array1.Release()
	array1.Fill(10)
	fmt.Fprintln(env.Out, array1)

	array3 := smartarray.New[int](env.opts()...)
	defer array3.Release()
	array3.CopyFrom(array1)
	fmt.Fprintln(env.Out, array3)
	fmt.Fprintln(env.Out, "Array3 assigned from Array1.")

	array4 := smartarray.NewSized[int](3, "TempArray", env.opts()...)
	defer array4.Release()
	array4.Fill(50)
	fmt.Fprintln(env.Out, "Before move, array4 contents:", array4)

	array3.MoveFrom(array4)
	fmt.Fprintln(env.Out, "After move, array3 now has contents:", array3)
	fmt.Fprintln(env.Out, "And array4 is now empty:", array4)
	return nil
}
