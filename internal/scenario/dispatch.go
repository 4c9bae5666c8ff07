package scenario

import (
	"fmt"

	"github.com/marcodamonte/objectmodel/printable"
)

func dispatch(env Env) error {
	ben := printable.Person{Name: "Ben"}
	fmt.Fprintln(env.Out, "Person Ben:")
	printable.RenderAll(env.Out, []printable.Printable{ben})

	rafa := printable.Employee{Person: printable.Person{Name: "Rafa"}, Age: 1}
	fmt.Fprintln(env.Out, "Employee Rafa:")
	rafa.Print(env.Out)

	// Copying the embedded Person out keeps only the Person fields.
	sliced := rafa.Person
	fmt.Fprintln(env.Out, "Employee Rafa, Person part only:")
	sliced.Print(env.Out)

	// Through the interface the dynamic type decides.
	var p printable.Printable = rafa
	fmt.Fprintln(env.Out, "Employee Rafa through Printable:")
	fmt.Fprint(env.Out, printable.Describe(p))

	clone := printable.Clone(p)
	fmt.Fprintf(env.Out, "Clone of Rafa is a %T:\n", clone)
	fmt.Fprint(env.Out, printable.Describe(clone))

	printable.ReleaseAll(env.Out, []printable.Releaser{ben, rafa})
	return nil
}
