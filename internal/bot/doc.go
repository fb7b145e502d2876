// Package bot implements the chat side of account linking without tying it
// to a chat SDK.
//
// LinkCommand is embedded by the bot process that hosts the chat gateway;
// neither hublink binary connects to a gateway itself. The adapter turns a
// "link" command (prefix or slash) into an Invocation and calls
// LinkCommand.Handle, typically with connection.HTTPClient as the
// LinkRequester. Direct messages go through a Messenger, which the adapter
// implements. WebhookMessenger delivers them to a bot process over HTTP, so
// hublink-server can confirm a completed link without sharing memory with
// the bot.
package bot
