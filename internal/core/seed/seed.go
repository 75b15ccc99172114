// Package seed holds the fixed users and posts used to populate an empty store.
//
// Identity keys (user email, post _id) never change between releases: the
// loader relies on them to skip records that are already stored.
package seed

import (
	"time"

	"sociopedia/internal/core/post"
	"sociopedia/internal/core/user"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Password is the clear-text credential of every seed user.
const Password = "password"

// bcrypt hash of Password, cost 10.
const passwordHash = "$2y$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi"

var (
	userIDs = []string{
		"64f1a0000000000000000001",
		"64f1a0000000000000000002",
		"64f1a0000000000000000003",
		"64f1a0000000000000000004",
		"64f1a0000000000000000005",
		"64f1a0000000000000000006",
		"64f1a0000000000000000007",
		"64f1a0000000000000000008",
	}
	postIDs = []string{
		"64f1b0000000000000000001",
		"64f1b0000000000000000002",
		"64f1b0000000000000000003",
		"64f1b0000000000000000004",
		"64f1b0000000000000000005",
		"64f1b0000000000000000006",
	}
	seededAt = time.Date(2023, time.September, 1, 12, 0, 0, 0, time.UTC)
)

type seedUser struct {
	firstName, lastName, email string
	location, occupation       string
	picturePath                string
	viewedProfile, impressions int
	friends                    []int
}

type seedPost struct {
	author      int
	description string
	picturePath string
	likedBy     []int
	comments    []string
}

var users = []seedUser{
	{"Test", "Me", "aaaaaaa@gmail.com", "San Fran, CA", "Software Engineer", "p11.jpeg", 14561, 888822, []int{1, 2}},
	{"Steve", "Ralph", "thataaa@gmail.com", "New York, CA", "Degenerate", "p3.jpeg", 12351, 55555, []int{0}},
	{"Some", "Guy", "someguy@gmail.com", "Canada, CA", "Data Scientist Hacker", "p4.jpeg", 45468, 19986, []int{0}},
	{"Whatcha", "Doing", "whatchadoing@gmail.com", "Korea, CA", "Educator", "p6.jpeg", 41024, 55316, nil},
	{"Jane", "Doe", "janedoe@gmail.com", "Utah, CA", "Hacker", "p5.jpeg", 40212, 7758, nil},
	{"Harvey", "Dunn", "harveydunn@gmail.com", "Los Angeles, CA", "Journalist", "p7.jpeg", 976, 4658, nil},
	{"Carly", "Vowel", "carlyvowel@gmail.com", "Chicago, IL", "Nurse", "p8.jpeg", 1510, 77579, nil},
	{"Jessica", "Dunn", "jessicadunn@gmail.com", "Washington, DC", "A Student", "p9.jpeg", 19420, 82970, nil},
}

var posts = []seedPost{
	{1, "Some really long random description", "post1.jpeg", []int{0, 3, 4, 5}, []string{
		"random comment",
		"another random comment",
		"yet another random comment",
	}},
	{3, "Another really long random description. This one is longer than the previous one.", "post2.jpeg", []int{6, 4, 0, 2}, []string{
		"one more random comment",
		"and another random comment",
		"no more random comments",
		"I lied, one more random comment",
	}},
	{4, "This is the last really long random description. This one is longer than the previous one.", "post3.jpeg", []int{6, 4, 0, 2}, []string{
		"one more random comment",
		"I lied, one more random comment",
		"I lied again, one more random comment",
		"Why am I doing this?",
		"I'm bored",
	}},
	{5, "This is the last really long random description. This one is longer than the previous one. Man I'm bored. I'm going to keep typing until I run out of things to say.", "post4.jpeg", []int{6, 4, 2}, []string{
		"I lied again, one more random comment",
		"Why am I doing this?",
		"Man I'm bored",
		"What should I do?",
		"I'm going to play video games",
	}},
	{6, "Just a short description", "post5.jpeg", []int{6, 4, 2, 3}, []string{
		"One more random comment",
		"I lied again, one more random comment",
		"Why am I doing this?",
	}},
	{7, "For the last time, I'm going to play video games now. Bye!", "post6.jpeg", []int{6, 4, 1, 2}, []string{
		"Can I play video games with you?",
		"Sure, let's do it",
		"Yay!",
	}},
}

// Users returns a fresh copy of the seed users, in their fixed order.
func Users() []*user.User {
	out := make([]*user.User, 0, len(users))
	for i, s := range users {
		friends := make([]string, 0, len(s.friends))
		for _, f := range s.friends {
			friends = append(friends, userIDs[f])
		}
		out = append(out, &user.User{
			ID:            mustObjectID(userIDs[i]),
			FirstName:     s.firstName,
			LastName:      s.lastName,
			Email:         s.email,
			Password:      passwordHash,
			PicturePath:   s.picturePath,
			Friends:       friends,
			Location:      s.location,
			Occupation:    s.occupation,
			ViewedProfile: s.viewedProfile,
			Impressions:   s.impressions,
			CreatedAt:     seededAt,
			UpdatedAt:     seededAt,
		})
	}
	return out
}

// Posts returns a fresh copy of the seed posts, in their fixed order.
func Posts() []*post.Post {
	out := make([]*post.Post, 0, len(posts))
	for i, s := range posts {
		author := users[s.author]
		likes := make(map[string]bool, len(s.likedBy))
		for _, l := range s.likedBy {
			likes[userIDs[l]] = true
		}
		comments := append([]string{}, s.comments...)
		createdAt := seededAt.Add(time.Duration(i) * time.Hour)
		out = append(out, &post.Post{
			ID:              mustObjectID(postIDs[i]),
			UserID:          userIDs[s.author],
			FirstName:       author.firstName,
			LastName:        author.lastName,
			Location:        author.location,
			Description:     s.description,
			PicturePath:     s.picturePath,
			UserPicturePath: author.picturePath,
			Likes:           likes,
			Comments:        comments,
			CreatedAt:       createdAt,
			UpdatedAt:       createdAt,
		})
	}
	return out
}

func mustObjectID(hex string) primitive.ObjectID {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		panic("seed: bad object id " + hex)
	}
	return id
}
