// Package stats computes aggregate figures over a list of posts.
//
// All functions are pure: they read the slice they are given and allocate only
// their result. Ties are resolved in favour of whatever came first in the
// input, so results depend on the order the caller fetched the posts in.
package stats

import (
	"encoding/json"

	"github.com/fullstackdevx/fso-part4/internal/models"
)

// Favorite is the reduced view of the most liked post
type Favorite struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// AuthorLikes is an author together with the likes summed over their posts
type AuthorLikes struct {
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// Summary bundles every statistic for one snapshot of posts
type Summary struct {
	Posts      int         `json:"posts"`
	TotalLikes int         `json:"total_likes"`
	Favorite   *Favorite   `json:"favorite"`
	TopAuthor  AuthorLikes `json:"top_author"`
}

// Dummy always returns 1.
func Dummy(_ []models.Post) int {
	return 1
}

// TotalLikes sums the likes of every post.
func TotalLikes(posts []models.Post) int {
	total := 0
	for _, p := range posts {
		total += p.Likes
	}
	return total
}

// FavoritePost returns the post with the most likes.
// A nil slice yields nil; an empty one yields an empty Favorite.
func FavoritePost(posts []models.Post) *Favorite {
	if posts == nil {
		return nil
	}
	if len(posts) == 0 {
		return &Favorite{}
	}

	best := posts[0]
	for _, p := range posts[1:] {
		if p.Likes > best.Likes {
			best = p
		}
	}
	return &Favorite{Title: best.Title, Author: best.Author, Likes: best.Likes}
}

// TopAuthor groups posts by author and returns the author with the highest
// like total. Groups are compared in the order their first post appears.
func TopAuthor(posts []models.Post) AuthorLikes {
	totals := make(map[string]int)
	order := make([]string, 0)
	for _, p := range posts {
		if _, seen := totals[p.Author]; !seen {
			order = append(order, p.Author)
		}
		totals[p.Author] += p.Likes
	}

	var best AuthorLikes
	for i, author := range order {
		if i == 0 || totals[author] > best.Likes {
			best = AuthorLikes{Author: author, Likes: totals[author]}
		}
	}
	return best
}

// Summarize computes every statistic over posts in one call.
func Summarize(posts []models.Post) Summary {
	return Summary{
		Posts:      len(posts),
		TotalLikes: TotalLikes(posts),
		Favorite:   FavoritePost(posts),
		TopAuthor:  TopAuthor(posts),
	}
}

// IsEmpty reports whether f is the "no favorite" record.
func (f Favorite) IsEmpty() bool {
	return f == Favorite{}
}

// IsEmpty reports whether a is the record returned for no posts.
func (a AuthorLikes) IsEmpty() bool {
	return a == AuthorLikes{}
}

// MarshalJSON encodes the empty record as {}.
func (f Favorite) MarshalJSON() ([]byte, error) {
	if f.IsEmpty() {
		return []byte("{}"), nil
	}
	type plain Favorite
	return json.Marshal(plain(f))
}

// MarshalJSON encodes the empty record as {}.
func (a AuthorLikes) MarshalJSON() ([]byte, error) {
	if a.IsEmpty() {
		return []byte("{}"), nil
	}
	type plain AuthorLikes
	return json.Marshal(plain(a))
}
