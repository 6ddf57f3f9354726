/*
Package operation runs one duplication from start to finish.

	+-------------+     +-------------+     +-------------+
	|   FileSet   | --> |  Selection  | --> |  Generate   |
	|   (load)    |     | (theatres)  |     |  (write)    |
	+-------------+     +-------------+     +-------------+
	        \                  |                  /
	         +-------------  Dialogs  ----------+

🎯 Purpose:
- Collects every answer from the operator before anything is written
- Turns each failure into exactly one notice for the operator
- Keeps the generation step free of any interaction

🔄 Flow:
1. Resolve the template files (arguments, or the open dialog)
2. Read them all; one unreadable file aborts the batch
3. Read the current theatre from the first file
4. Ask which theatres to generate
5. Ask for the output directory
6. Write every file for every theatre and list what was created

⚡ Outcomes:
- *FatalError: an error notice was shown and nothing more happens
- ErrCancelled: the theatre dialog was closed without confirming
- nil: files were written, or no directory was chosen

🔍 Example:

	op, err := operation.New(operation.Options{
		Args:    os.Args[1:],
		Dialogs: dialog.NewTerminal(),
	})
	if err != nil {
		return err
	}
	err = operation.NewRunner(false).Run(ctx, op)
*/
package operation
