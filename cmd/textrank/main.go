// Command textrank extracts keywords from part-of-speech tagged text.
//
//	textrank extract --top 5 article.txt
//	echo "나무/NNG 심/VV 꽃/NNG" | textrank extract --format text
//	textrank serve --addr :8080
package main

import "github.com/vbalien/textrank/internal/cli"

func main() {
	cli.Execute()
}
