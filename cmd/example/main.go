// Command example wires a handful of routes to demonstrate the forge
// API: a plain GET, a POST, a chunked file response, a middleware
// chain, and a custom not-found handler. It mirrors
// original_source/execution/src/main.rs's shape in Go idiom; the route
// wiring itself is a collaborator, not part of the engine spec.md
// describes.
package main

import (
	"log"

	"github.com/watt-toolkit/forge"
	"github.com/watt-toolkit/forge/pkg/httpcore"
)

func main() {
	cfg := httpcore.DefaultConfig()
	cfg.OpenLog = true

	srv := forge.New(forge.EndPoint{A: 0, B: 0, C: 0, D: 0, Port: 8080}, cfg, 10)

	srv.Route([]string{httpcore.GET}, "/").Reg(func(req *httpcore.Request, res *httpcore.Response) {
		res.Status(200).WriteString("hello from router")
	})

	srv.Route([]string{httpcore.POST}, "/post").Reg(func(req *httpcore.Request, res *httpcore.Response) {
		res.Status(200).WriteString("hello from router")
	})

	srv.Route([]string{httpcore.GET}, "/chunked").Reg(func(req *httpcore.Request, res *httpcore.Response) {
		res.Status(200).WriteFile("./upload/test.txt").Chunked(true)
	})

	srv.Route([]string{httpcore.GET}, "/download/*").Reg(func(req *httpcore.Request, res *httpcore.Response) {
		res.Status(200).WriteFile("./upload/test.txt").EnableRange(true)
	})

	middlewares := httpcore.Middlewares(
		func(req *httpcore.Request, res *httpcore.Response) bool {
			log.Println("invoke middleware1")
			return true
		},
		func(req *httpcore.Request, res *httpcore.Response) bool {
			log.Println("invoke middleware2")
			return true
		},
	)
	srv.Route([]string{httpcore.GET}, "/middle").RegWithMiddlewares(middlewares, func(req *httpcore.Request, res *httpcore.Response) {
		log.Println("invoke router")
		res.Status(200).WriteString("hello from router")
	})

	srv.SetNotFound(func(req *httpcore.Request, res *httpcore.Response) {
		res.Status(404).WriteString("not found")
	})

	if err := srv.Run(); err != nil {
		log.Fatal(err)
	}
}
