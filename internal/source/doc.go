// Package source loads the item list a search box filters.
//
// Items are read from a JSON file or fetched over HTTP. A gjson path picks
// the array inside the document:
//
//	src, err := source.New(source.Spec{URL: "localhost:8080/movies.json", JSONPath: "data.movies"})
//	if err != nil {
//		return err
//	}
//	items, err := src.Fetch(ctx)
//
// Every element of the selected array must be a JSON object.
package source
