// Command sitepanel serves the configurable landing page and its admin
// editor, and inspects or resets the stored site configuration.
package main

func main() {
	Execute()
}
