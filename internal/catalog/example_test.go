package catalog_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jpl-au/tagidx/internal/catalog"
	"github.com/jpl-au/tagidx/internal/repo"
	"github.com/jpl-au/tagidx/tagset"
)

// tempCatalog creates a throwaway catalogue for examples.
func tempCatalog() (*catalog.Service, func()) {
	dir, err := os.MkdirTemp("", "tagidx-example-*")
	if err != nil {
		panic(err)
	}
	if err := repo.Init(context.Background(), repo.InitOptions{Dir: dir, Limits: tagset.DefaultLimits}); err != nil {
		panic(err)
	}
	svc, err := catalog.Open(filepath.Join(dir, repo.Dir, repo.DBFile))
	if err != nil {
		panic(err)
	}
	return svc, func() {
		svc.Close()
		os.RemoveAll(dir)
	}
}

func Example() {
	svc, cleanup := tempCatalog()
	defer cleanup()
	ctx := context.Background()

	site, err := svc.Create(ctx, 2, "n=1, Site", "alice")
	if err != nil {
		panic(err)
	}
	if _, err := svc.Link(ctx, 4, "alice"); err != nil {
		panic(err)
	}

	found, err := svc.Find(ctx, "Site")
	if err != nil {
		panic(err)
	}
	fmt.Println(len(found), found[0].Index.Same(site.Index))
	fmt.Println(site.Index.Tags)
	// Output:
	// 1 true
	// Site,n=1
}

func ExampleService_Tag() {
	svc, cleanup := tempCatalog()
	defer cleanup()
	ctx := context.Background()

	e, err := svc.Create(ctx, 2, "Site", "alice")
	if err != nil {
		panic(err)
	}
	id := e.Index.ID.String()

	e, err = svc.Tag(ctx, id, "n=1,Link", "tester")
	if err != nil {
		panic(err)
	}
	fmt.Println(e.Index.Tags)

	_, err = svc.Tag(ctx, id, "a,b", "tester")
	fmt.Println(err)
	// Output:
	// Link,Site,n=1
	// too many tags: 5 tags (max 4)
}
