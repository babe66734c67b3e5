// Package comparison combines asset file info lists through a sequence of set-algebra
// and file-pattern steps.
//
// # Operators
//
// Every binary operator receives a first set A and a second set B and produces a new list.
// When a record exists in both sets the record from B is kept ("second set wins").
//
//   - Union: ids in A or B.
//   - Intersection: ids in A and B.
//   - Complement: ids in B that are not in A.
//   - Delta: ids in B that are not in A, plus ids in both whose hash changed.
//   - FilePattern: records of A whose path matches a wildcard or regex pattern (unary).
//
// # Pipelines
//
// A Comparison holds an ordered list of Steps. CompareAndSaveResults assigns the caller's
// identifiers to the steps in order: each step takes the next first-list identifier and,
// for binary operators, the next second-list identifier. When the first list runs out,
// a step reads the previous step's output. Identifiers beginning with "$" are symbolic
// tokens naming the output of an earlier step in the same call; anything else is a store
// locator.
//
// The whole call is planned before any list is loaded, so configuration, pattern and token
// errors never write outputs. Once execution starts, steps run in order and a failure stops
// the call; outputs already saved by earlier steps are left in place.
//
// # Usage
//
//	cmp := comparison.New(store, logger)
//	cmp.AddComparisonStep(comparison.NewStep(comparison.Delta, "$1"))
//	cmp.AddComparisonStep(comparison.NewFilePatternStep("result.assetlist", "Asset[0-3].txt", pattern.Regex))
//	res, err := cmp.CompareAndSaveResults(ctx, []string{"first.assetlist", "$1"}, []string{"second.assetlist"})
package comparison
