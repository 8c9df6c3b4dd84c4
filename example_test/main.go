package main

import (
	"fmt"
	"time"

	"github.com/linxlib/configdir"
)

func main() {
	loader := configdir.New(&configdir.Option{
		Profile:       "production",
		WatchInterval: time.Second,
		OnReload: func(tree configdir.Tree) {
			fmt.Println("configuration reloaded:", tree)
		},
	})

	watcher, err := loader.Watch("conf")
	if err != nil {
		fmt.Println("load failed:", err)
		return
	}
	defer watcher.Stop()

	// The tree handed out by the store is live: it reflects every reload.
	store := configdir.DefaultStore
	fmt.Println("db host:", store.Get("db.mongo.host").String("localhost"))

	var db struct {
		Host    string        `yaml:"host"`
		Port    int           `yaml:"port"`
		Timeout time.Duration `yaml:"timeout"`
	}
	if err := store.Scan("db.mongo", &db); err != nil {
		fmt.Println("scan failed:", err)
		return
	}
	fmt.Printf("db: %+v\n", db)

	ticker := time.NewTicker(time.Second * 2)
	for range ticker.C {
		fmt.Println("workers:", store.Get("app.workers").Int(1))
	}
}
