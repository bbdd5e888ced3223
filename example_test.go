package box_test

import (
	"fmt"

	"github.com/signadot/tony-format/box"
)

func Example() {
	b, err := box.New(map[string]any{
		"server": map[string]any{"port": 8080, "host-name": "localhost"},
	}, box.Dots())
	if err != nil {
		panic(err)
	}
	port, _ := b.Get("server.port")
	fmt.Println(port)

	srv, _ := b.Sub("server")
	host, _ := srv.Attr("host_name")
	fmt.Println(host)

	_ = srv.Set("port", 9090)
	d, _ := b.ToJSON()
	fmt.Println(string(d))
	// Output:
	// 8080
	// localhost
	// {"server":{"host-name":"localhost","port":9090}}
}

func ExampleDefaultBox() {
	b := box.Must(box.New(box.DefaultBox()))
	_ = b.SetPath("a.b.c", 1)
	fmt.Println(b)
	// Output:
	// <Box: {"a": {"b": {"c": 1}}}>
}

func ExampleList_Sort() {
	l := box.MustList(box.NewList([]any{3, "a", nil, 1.5}))
	_ = l.Sort(nil)
	fmt.Println(l)
	// Output:
	// <List: [null, 1.5, 3, "a"]>
}

func ExampleCamelKiller() {
	b := box.Must(box.New(map[string]any{"Hello World": 1, "HTMLParser": 2}, box.CamelKiller()))
	v, _ := b.Attr("hello_world")
	fmt.Println(v)
	v, _ = b.Attr("html_parser")
	fmt.Println(v)
	_, err := b.Attr("Hello_World")
	fmt.Println(err != nil)
	// Output:
	// 1
	// 2
	// true
}
