// export_test.go exports private functions for white-box testing.
package sass

var (
	NewImporter  = newImporter
	Report       = report
	CompileError = compileError
)
