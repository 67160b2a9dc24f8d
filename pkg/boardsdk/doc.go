/*
Package boardsdk provides a Go client for the Boardify Kanban service.

# Sessions

Boardify authenticates with an opaque session cookie. A Client owns a
cookie jar, so after Signup or Login every call made through it runs as
that user:

	alice := boardsdk.NewClient("https://boards.example.com")
	if _, err := alice.Signup(ctx, boardsdk.SignupRequest{
		Email:    "alice@example.com",
		Password: "correct horse",
	}); err != nil {
		return err
	}

	me, err := alice.Me(ctx)

Non-browser callers that already hold a token can skip the jar:

	c := boardsdk.NewClientWithToken(baseURL, token)

# Boards

Personal boards are private to their owner. Collaborative boards are
shared through invites:

	board, err := alice.CreateCollabBoard(ctx, boardsdk.Board{
		ID:      "team",
		Name:    "Team",
		Columns: []boardsdk.Column{{ID: "todo", Name: "To Do"}},
	})

	inv, err := alice.Invite(ctx, "team", "bob@example.com")
	// inv.Status == boardsdk.InviteStatusCreated: hand inv.Token to Bob.

	joined, err := bob.AcceptInvite(ctx, inv.Token)

# Errors

Non-2xx responses are returned as *APIError. Use StatusCode or the Is*
helpers to branch on them:

	if boardsdk.IsForbidden(err) {
		// not a member, or not an admin
	}
*/
package boardsdk
