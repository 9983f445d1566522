// Package snapdex is an embedded Go client for the snapdex screenshot search
// engine. It talks to the same Valkey, Redis or Badger storage as the API
// server and runs the ranking in-process.
//
//	client, _ := snapdex.New(ctx, snapdex.WithBadger("./data"))
//	defer client.Close()
//
//	_, _ = client.Screenshots().Import(ctx, snapdex.ImportRequest{
//	    Owner: "alice",
//	    File:  snapdex.File{Name: "login.png", MIMEType: "image/png"},
//	    Features: snapdex.Features{
//	        ExtractedText: "Login failed: invalid password",
//	        UIElements:    []string{"login button"},
//	    },
//	})
//	results, _ := client.Search(ctx, "alice", "login error", 5)
//
// Searches are scoped to one owner. WithOwnerOptional allows an empty owner
// for administrative tools. Background analysis of uploaded images runs only
// when an analyzer is configured (WithAnalyzer or WithOpenAIVision).
package snapdex
