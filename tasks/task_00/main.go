package main

import "fmt"

func main() {
	fmt.Println(hello()) // Expected output: "Hello, World!"
}
