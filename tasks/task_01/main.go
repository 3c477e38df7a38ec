package main

import "fmt"

func main() {
	fmt.Println(greet("Alice"))   // Expected output: "Hello, Alice!"
	fmt.Println(greet("Bob"))     // Expected output: "Hello, Bob!"
	fmt.Println(greet("Charlie")) // Expected output: "Hello, Charlie!"
}
