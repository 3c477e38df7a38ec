package main

func hello() string {
	return "Hello, World!"
}
